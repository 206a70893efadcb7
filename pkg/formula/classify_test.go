package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

func TestStandardizeQuotes(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"single quotes", []string{"'string'", "+", "'another string'"}, []string{`"string"`, "+", `"another string"`}},
		{"mixed quotes", []string{"'single'", `"double"`, "'mixed'"}, []string{`"single"`, `"double"`, `"mixed"`}},
		{"non strings untouched", []string{"123", "+", "variable_name", "[column]"}, []string{"123", "+", "variable_name", "[column]"}},
		{"apostrophes untouched", []string{"word", "don't", "isn't"}, []string{"word", "don't", "isn't"}},
		{"empty string", []string{"''"}, []string{`""`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StandardizeQuotes(tt.tokens))
		})
	}
}

func TestClassifyKinds(t *testing.T) {
	reg := funcs.Builtin()
	tests := []struct {
		val  string
		want Kind
	}{
		{"true", KindBoolean},
		{"FALSE", KindBoolean},
		{"+", KindOperator},
		{"and", KindOperator},
		{"in", KindOperator},
		{"(", KindPrio},
		{")", KindPrio},
		{"concat", KindFunction},
		{"pl.col", KindFunction},
		{"$if$", KindCaseWhen},
		{"$endif$", KindCaseWhen},
		{"42", KindNumber},
		{"-42", KindNumber},
		{"3.14", KindNumber},
		{"__negative()", KindSpecial},
		{",", KindSep},
		{`"hello"`, KindString},
		{"unregistered_name", KindString},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			assert.Equal(t, tt.want, NewToken(tt.val, reg).Kind)
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	reg := funcs.Builtin()
	assert.Equal(t, 1, NewToken("or", reg).Prec)
	assert.Equal(t, 2, NewToken("and", reg).Prec)
	assert.Equal(t, 3, NewToken("=", reg).Prec)
	assert.Equal(t, 4, NewToken("+", reg).Prec)
	assert.Equal(t, 5, NewToken("*", reg).Prec)
}

func TestClassifyDropsEmptyTokens(t *testing.T) {
	toks := ClassifyTokens([]string{"a", "", "b"}, funcs.Builtin())
	require.Len(t, toks, 2)
	assert.Equal(t, "a", toks[0].Val)
	assert.Equal(t, "b", toks[1].Val)
}

func classifyVals(t *testing.T, vals ...string) []*Token {
	t.Helper()
	return ClassifyTokens(vals, funcs.Builtin())
}

func tokenVals(toks []*Token) []string {
	vals := make([]string, len(toks))
	for i, tok := range toks {
		vals[i] = tok.Val
	}
	return vals
}

func TestDisambiguateMinusLeading(t *testing.T) {
	toks, err := DisambiguateMinus(classifyVals(t, "-", "5"), funcs.Builtin())
	require.NoError(t, err)
	assert.Equal(t, []string{"__negative()", "*", "5"}, tokenVals(toks))
}

func TestDisambiguateMinusAfterOperator(t *testing.T) {
	toks, err := DisambiguateMinus(classifyVals(t, "10", "+", "-", "5"), funcs.Builtin())
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "+", "__negative()", "*", "5"}, tokenVals(toks))

	toks, err = DisambiguateMinus(classifyVals(t, "10", "*", "-", "5"), funcs.Builtin())
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "*", "__negative()", "*", "5"}, tokenVals(toks))
}

func TestDisambiguateMinusBinary(t *testing.T) {
	toks, err := DisambiguateMinus(classifyVals(t, "10", "-", "5"), funcs.Builtin())
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "+", "__negative()", "*", "5"}, tokenVals(toks))
}

func TestDisambiguateMinusAfterClosingParen(t *testing.T) {
	toks, err := DisambiguateMinus(classifyVals(t, "(", "a", ")", "-", "5"), funcs.Builtin())
	require.NoError(t, err)
	assert.Equal(t, []string{"(", "a", ")", "+", "__negative()", "*", "5"}, tokenVals(toks))
}

func TestDisambiguateMinusDoubleMinusFails(t *testing.T) {
	_, err := DisambiguateMinus(classifyVals(t, "10", "-", "-", "5"), funcs.Builtin())
	var cerr *ClassifyError
	require.ErrorAs(t, err, &cerr)
}
