package formula

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	tokens, err := Tokenize("a + b * c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "+", "b", "*", "c"}, tokens)
}

func TestTokenizeStringLiterals(t *testing.T) {
	tokens, err := Tokenize("concat('Hello, world!',variable)")
	require.NoError(t, err)
	assert.Equal(t, []string{"concat", "(", "'Hello, world!'", ",", "variable", ")"}, tokens)

	tokens, err = Tokenize(`concat("Hello, world!",variable)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"concat", "(", `"Hello, world!"`, ",", "variable", ")"}, tokens)
}

func TestTokenizeNestedFunctions(t *testing.T) {
	tokens, err := Tokenize("round(sqrt(a*b),2)")
	require.NoError(t, err)
	assert.Equal(t, []string{"round", "(", "sqrt", "(", "a", "*", "b", ")", ",", "2", ")"}, tokens)
}

func TestTokenizeLogicalOperators(t *testing.T) {
	tokens, err := Tokenize("a > 0 and b < 10 or c == 5")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", ">", "0", "and", "b", "<", "10", "or", "c", "==", "5"}, tokens)
}

func TestTokenizeBrackets(t *testing.T) {
	tokens, err := Tokenize("[column1]+[column2]*2")
	require.NoError(t, err)
	assert.Equal(t, []string{"[column1]", "+", "[column2]", "*", "2"}, tokens)
}

func TestTokenizeNestedBrackets(t *testing.T) {
	tokens, err := Tokenize("[[nested_column]]")
	require.NoError(t, err)
	assert.Equal(t, []string{"[[nested_column]]"}, tokens)
}

func TestTokenizeConditionalSentinels(t *testing.T) {
	formula := `$if$((pl.col("a")>10 and pl.col("b")<5) or pl.col("c")='value')$then$(concat(pl.col("a"),' is ',pl.col("b")))$else$('not matched')$endif$`
	tokens, err := Tokenize(formula)
	require.NoError(t, err)
	want := []string{
		"$if$", "(", "(", "pl.col", "(", `"a"`, ")", ">", "10", "and", "pl.col", "(", `"b"`, ")", "<", "5",
		")", "or", "pl.col", "(", `"c"`, ")", "=", "'value'", ")", "$then$", "(", "concat", "(", "pl.col",
		"(", `"a"`, ")", ",", "' is '", ",", "pl.col", "(", `"b"`, ")", ")", ")", "$else$", "(",
		"'not matched'", ")", "$endif$",
	}
	assert.Equal(t, want, tokens)
}

func TestTokenizeOperatorsInsideStrings(t *testing.T) {
	tokens, err := Tokenize("'a + b * c / d'")
	require.NoError(t, err)
	assert.Equal(t, []string{"'a + b * c / d'"}, tokens)

	tokens, err = Tokenize(`"a > b and c < d"`)
	require.NoError(t, err)
	assert.Equal(t, []string{`"a > b and c < d"`}, tokens)
}

func TestTokenizeEqualityOperators(t *testing.T) {
	tokens, err := Tokenize("a == b != c >= d <= e")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "==", "b", "!=", "c", ">=", "d", "<=", "e"}, tokens)
}

func TestTokenizeParentheses(t *testing.T) {
	tokens, err := Tokenize("(a+b)*(c-d)")
	require.NoError(t, err)
	assert.Equal(t, []string{"(", "a", "+", "b", ")", "*", "(", "c", "-", "d", ")"}, tokens)
}

func TestTokenizeWhitespaceDiscarded(t *testing.T) {
	tokens, err := Tokenize("  a  +  b  *  c  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "+", "b", "*", "c"}, tokens)
}

func TestTokenizeSpecialCharsInStrings(t *testing.T) {
	tokens, err := Tokenize("'string with (parens) and [brackets] and operators + - * /'")
	require.NoError(t, err)
	assert.Equal(t, []string{"'string with (parens) and [brackets] and operators + - * /'"}, tokens)
}

func TestTokenizeErrors(t *testing.T) {
	_, err := Tokenize("'unterminated")
	var terr *TokenizeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 0, terr.Offset)

	_, err = Tokenize("[open")
	require.ErrorAs(t, err, &terr)

	_, err = Tokenize("a ! b")
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 2, terr.Offset)
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"a + b * c",
		"round(sqrt(a*b),2)",
		"(a+b)*(c-d)",
		"[col]>=10 and x!='y'",
	}
	for _, input := range inputs {
		first, err := Tokenize(input)
		require.NoError(t, err)
		second, err := Tokenize(strings.Join(first, " "))
		require.NoError(t, err)
		assert.Equal(t, first, second, "round trip differs for %q", input)
	}
}
