package formula

import (
	"strings"

	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

// StandardizeQuotes rewrites single-quoted string tokens to double quotes so
// downstream passes see one canonical quote form.
func StandardizeQuotes(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if len(tok) >= 2 && strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") {
			out[i] = `"` + tok[1:len(tok)-1] + `"`
		} else {
			out[i] = tok
		}
	}
	return out
}

// ClassifyTokens wraps raw token strings with their semantic kind and
// operator precedence. Empty tokens are dropped.
func ClassifyTokens(tokens []string, reg *funcs.Registry) []*Token {
	tokens = StandardizeQuotes(tokens)
	out := make([]*Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		out = append(out, NewToken(tok, reg))
	}
	return out
}

// NewToken classifies a single raw token string.
func NewToken(val string, reg *funcs.Registry) *Token {
	return &Token{Val: val, Kind: kindOf(val, reg), Prec: precedence[val]}
}

func kindOf(val string, reg *funcs.Registry) Kind {
	lower := strings.ToLower(val)
	switch {
	case lower == "true" || lower == "false":
		return KindBoolean
	case precedence[val] != 0:
		return KindOperator
	case val == "(" || val == ")":
		return KindPrio
	case val == "":
		return KindEmpty
	case reg != nil && reg.Contains(val):
		return KindFunction
	case caseWhenSentinels[val]:
		return KindCaseWhen
	case isNumeric(val):
		return KindNumber
	case val == negativeMarker:
		return KindSpecial
	case val == ",":
		return KindSep
	}
	return KindString
}

// isNumeric matches integer and floating-point literals, optionally signed.
func isNumeric(val string) bool {
	if val == "" {
		return false
	}
	if val[0] == '-' {
		val = val[1:]
	}
	if val == "" {
		return false
	}
	seenDot := false
	for i := 0; i < len(val); i++ {
		c := val[i]
		if c == '.' {
			if seenDot || i == 0 || i == len(val)-1 {
				return false
			}
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// DisambiguateMinus rewrites every minus sign so the downstream operator
// resolver never sees subtraction: a unary minus becomes __negative() *
// operand, and binary A - B becomes A + __negative() * B.
func DisambiguateMinus(toks []*Token, reg *funcs.Registry) ([]*Token, error) {
	out := make([]*Token, 0, len(toks))
	for i, tok := range toks {
		if tok.Kind != KindOperator || tok.Val != "-" {
			out = append(out, tok)
			continue
		}
		if i+1 < len(toks) && toks[i+1].Kind == KindOperator && toks[i+1].Val == "-" {
			return nil, &ClassifyError{Offset: -1, Message: "consecutive minus signs with no operand between them"}
		}
		if minusIsUnary(toks, i) {
			out = append(out,
				NewToken(negativeMarker, reg),
				NewToken("*", reg))
		} else {
			out = append(out,
				NewToken("+", reg),
				NewToken(negativeMarker, reg),
				NewToken("*", reg))
		}
	}
	return out, nil
}

// minusIsUnary reports whether the minus at index i negates its operand
// rather than subtracting: at the start of the input, after another
// operator, after an opening bracket, or after an argument separator.
func minusIsUnary(toks []*Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := toks[i-1]
	switch {
	case prev.Kind == KindOperator:
		return true
	case prev.Kind == KindPrio && prev.Val == "(":
		return true
	case prev.Kind == KindSep:
		return true
	}
	return false
}
