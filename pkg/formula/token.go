// Package formula compiles the expression language — column references,
// arithmetic, string functions, conditionals and a fixed function library —
// into engine expressions. The pipeline runs six passes: preprocess,
// tokenize, classify, build hierarchy, resolve inline operators, finalize,
// then emits through the function registry.
package formula

import "fmt"

// Kind is the semantic classification of a token.
type Kind int

// Token kinds.
const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindOperator
	KindFunction
	KindColumn
	KindEmpty
	KindCaseWhen
	KindPrio
	KindSep
	KindSpecial
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindOperator:
		return "operator"
	case KindFunction:
		return "function"
	case KindColumn:
		return "column"
	case KindEmpty:
		return "empty"
	case KindCaseWhen:
		return "case_when"
	case KindPrio:
		return "prio"
	case KindSep:
		return "sep"
	case KindSpecial:
		return "special"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// precedence fixes how tightly each operator binds; higher binds tighter.
var precedence = map[string]int{
	"or":  1,
	"and": 2,
	"in":  3,
	"=":   3,
	"!=":  3,
	"<":   3,
	">":   3,
	"<=":  3,
	">=":  3,
	"+":   4,
	"-":   4,
	"*":   5,
	"/":   5,
}

// conditional keyword sentinels produced by preprocessing.
var caseWhenSentinels = map[string]bool{
	sentinelIf:     true,
	sentinelThen:   true,
	sentinelElseif: true,
	sentinelElse:   true,
	sentinelEndif:  true,
}

const (
	sentinelIf     = "$if$"
	sentinelThen   = "$then$"
	sentinelElseif = "$elseif$"
	sentinelElse   = "$else$"
	sentinelEndif  = "$endif$"

	// negativeMarker is the synthetic token the unary-minus pass inserts; it
	// evaluates to -1 so that -x becomes -1 * x.
	negativeMarker = "__negative()"
)

// Token is a classified token: the raw value, its kind, and the operator
// precedence when applicable. Tokens double as the leaf nodes of the tree.
type Token struct {
	Val    string
	Kind   Kind
	Prec   int
	parent Node
}

// Parent returns the node whose slot holds this leaf.
func (t *Token) Parent() Node { return t.parent }

func (t *Token) setParent(p Node) { t.parent = p }

// IsOperator reports whether the token is an operator leaf.
func (t *Token) IsOperator() bool { return t.Kind == KindOperator }

// String implements fmt.Stringer for diagnostics.
func (t *Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Val)
}
