package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

func compileSQL(t *testing.T, expression string) string {
	t.Helper()
	e, err := Compile(expression)
	require.NoError(t, err)
	return e.ToSQL()
}

func TestCompileStringLiteral(t *testing.T) {
	assert.Equal(t, `'hello'`, compileSQL(t, `"hello"`))
	assert.Equal(t, `'hello'`, compileSQL(t, `'hello'`))
}

func TestCompileNumericLiterals(t *testing.T) {
	assert.Equal(t, `42`, compileSQL(t, `42`))
	assert.Equal(t, `1.5`, compileSQL(t, `1.5`))
	// Constant arithmetic folds before emission.
	assert.Equal(t, `7`, compileSQL(t, `3 + 4`))
	assert.Equal(t, `-4`, compileSQL(t, `2 * -2`))
}

func TestCompileColumnArithmetic(t *testing.T) {
	got := compileSQL(t, "[a] + [b] * 2")
	assert.Equal(t, `("a" + ("b" * 2))`, got)
}

func TestCompilePrecedence(t *testing.T) {
	assert.Equal(t, `(("a" * "b") + "c")`, compileSQL(t, "[a] * [b] + [c]"))
	assert.Equal(t, `("a" + ("b" * "c"))`, compileSQL(t, "[a] + [b] * [c]"))
}

func TestCompileLeftAssociativity(t *testing.T) {
	assert.Equal(t, `(("a" + "b") + "c")`, compileSQL(t, "[a] + [b] + [c]"))
}

func TestCompileConditional(t *testing.T) {
	got := compileSQL(t, `if [a] < 3 then "small" else "large" endif`)
	assert.Equal(t, `CASE WHEN ("a" < 3) THEN 'small' ELSE 'large' END`, got)
}

func TestCompileConditionalElseif(t *testing.T) {
	got := compileSQL(t, `if [a] < 2 then "tiny" elseif [a] < 3 then "medium" else "huge" endif`)
	want := `CASE WHEN ("a" < 2) THEN 'tiny' WHEN ("a" < 3) THEN 'medium' ELSE 'huge' END`
	assert.Equal(t, want, got)
}

func TestCompileCommentInsideStringIsLiteral(t *testing.T) {
	got := compileSQL(t, `concat([text], " // literal")`)
	assert.Equal(t, `concat("text", ' // literal')`, got)
}

func TestCompileCommentInvariance(t *testing.T) {
	plain := compileSQL(t, "[a] + 1")
	commented := compileSQL(t, "[a] + 1 // trailing comment")
	assert.Equal(t, plain, commented)
}

func TestCompileUnaryMinus(t *testing.T) {
	got := compileSQL(t, "-[a] + 5")
	assert.Equal(t, `((-1 * "a") + 5)`, got)

	// -x and 0 - x agree on constants.
	assert.Equal(t, compileSQL(t, "0 - 3"), compileSQL(t, "-3"))
}

func TestCompileSubtractionAsNegativeAddition(t *testing.T) {
	got := compileSQL(t, "[a] - [b]")
	assert.Equal(t, `("a" + (-1 * "b"))`, got)
}

func TestCompileLogicalOperators(t *testing.T) {
	got := compileSQL(t, "[a] > 0 and [b] < 10")
	assert.Equal(t, `(("a" > 0) AND ("b" < 10))`, got)

	got = compileSQL(t, "[a] = 1 or [b] != 2")
	assert.Equal(t, `(("a" = 1) OR ("b" != 2))`, got)
}

func TestCompileEqualitySynonym(t *testing.T) {
	assert.Equal(t, compileSQL(t, "[a] = 1"), compileSQL(t, "[a] == 1"))
}

func TestCompileInOperator(t *testing.T) {
	got := compileSQL(t, `"a" in [names]`)
	assert.Equal(t, `contains("names", 'a')`, got)
}

func TestCompileStringConcatenationOperator(t *testing.T) {
	got := compileSQL(t, `[a] + " loves " + [b]`)
	assert.Equal(t, `(("a" || ' loves ') + "b")`, got)
}

func TestCompileNestedFunctions(t *testing.T) {
	got := compileSQL(t, "round(sqrt([a] * [b]), 2)")
	assert.Equal(t, `round(sqrt(("a" * "b")), 2)`, got)
}

func TestCompileFunctionOnLiteral(t *testing.T) {
	assert.Equal(t, `length('ham')`, compileSQL(t, `length("ham")`))
}

func TestCompileConditionalInsideFunction(t *testing.T) {
	got := compileSQL(t, `concat("result:", if [a] > 1 then "big" else "small" endif)`)
	assert.Equal(t, `concat('result:', CASE WHEN ("a" > 1) THEN 'big' ELSE 'small' END)`, got)
}

func TestCompileGroupedExpression(t *testing.T) {
	got := compileSQL(t, "([a] + [b]) * 2")
	assert.Equal(t, `(("a" + "b") * 2)`, got)
}

func TestCompileBooleanLiterals(t *testing.T) {
	assert.Equal(t, `TRUE`, compileSQL(t, "true"))
	assert.Equal(t, `FALSE`, compileSQL(t, "false"))
}

func TestCompileMixedNumericAlignment(t *testing.T) {
	// Mixed int and float promote to float before invocation.
	assert.Equal(t, `3.5`, compileSQL(t, "1 + 2.5"))
}

func TestCompileErrors(t *testing.T) {
	t.Run("unbalanced quote", func(t *testing.T) {
		_, err := Compile(`concat('oops)`)
		var perr *PreprocessError
		assert.ErrorAs(t, err, &perr)
	})
	t.Run("missing endif", func(t *testing.T) {
		_, err := Compile(`if [a] > 1 then "x" else "y"`)
		var merr *MissingEndifError
		assert.ErrorAs(t, err, &merr)
	})
	t.Run("missing else", func(t *testing.T) {
		_, err := Compile(`if [a] > 1 then "x" endif`)
		var uerr *UnexpectedTokenError
		assert.ErrorAs(t, err, &uerr)
	})
	t.Run("duplicate then", func(t *testing.T) {
		_, err := Compile(`if [a] < 1 then [b] then [c] else [d] endif`)
		var uerr *UnexpectedTokenError
		assert.ErrorAs(t, err, &uerr)
	})
	t.Run("double minus", func(t *testing.T) {
		_, err := Compile("1 - - 2")
		var cerr *ClassifyError
		assert.ErrorAs(t, err, &cerr)
	})
}

func TestCompileConcurrentUse(t *testing.T) {
	c := New(funcs.Builtin())
	done := make(chan string, 8)
	for range 8 {
		go func() {
			e, err := c.Compile("[a] + [b] * 2")
			if err != nil {
				done <- err.Error()
				return
			}
			done <- e.ToSQL()
		}()
	}
	for range 8 {
		assert.Equal(t, `("a" + ("b" * 2))`, <-done)
	}
}

func TestCompilerMaxDepthOption(t *testing.T) {
	c := New(funcs.Builtin(), WithMaxDepth(4))
	_, err := c.Compile("((((([a])))))")
	var nerr *NestingLimitError
	require.ErrorAs(t, err, &nerr)
}

func TestParseReturnsFinalizedTree(t *testing.T) {
	c := New(funcs.Builtin())
	root, err := c.Parse("[a] + 1")
	require.NoError(t, err)

	call, ok := root.(*Call)
	require.True(t, ok)
	assert.Equal(t, litFunctionName, call.RefName())
	_, found := findScaffold(root)
	assert.False(t, found)
}
