// Package expr provides the engine expression API that compiled formulas
// target. An Expr is an immutable, deferred computation over a table column;
// it renders to DuckDB SQL via ToSQL.
package expr

import (
	"fmt"
	"strings"
	"time"
)

// Expr represents a deferred computation over a table column.
// The zero value is invalid; construct one with Col, Lit, Call or the
// operator methods.
type Expr struct {
	node node
}

// node is the internal render tree.
type node interface {
	render(sb *strings.Builder)
}

// IsValid reports whether the expression holds a render tree.
func (e Expr) IsValid() bool {
	return e.node != nil
}

// ToSQL renders the expression as a DuckDB SQL scalar expression.
func (e Expr) ToSQL() string {
	if e.node == nil {
		return ""
	}
	var sb strings.Builder
	e.node.render(&sb)
	return sb.String()
}

// String implements fmt.Stringer.
func (e Expr) String() string {
	return e.ToSQL()
}

// ---------- Leaf nodes ----------

type colNode struct {
	name string
}

func (n colNode) render(sb *strings.Builder) {
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(n.name, `"`, `""`))
	sb.WriteByte('"')
}

// Col returns an expression referencing the named column.
func Col(name string) Expr {
	return Expr{node: colNode{name: name}}
}

type litNode struct {
	val any
}

func (n litNode) render(sb *strings.Builder) {
	switch v := n.val.(type) {
	case nil:
		sb.WriteString("NULL")
	case string:
		sb.WriteByte('\'')
		sb.WriteString(strings.ReplaceAll(v, "'", "''"))
		sb.WriteByte('\'')
	case bool:
		if v {
			sb.WriteString("TRUE")
		} else {
			sb.WriteString("FALSE")
		}
	case int:
		fmt.Fprintf(sb, "%d", v)
	case int64:
		fmt.Fprintf(sb, "%d", v)
	case float64:
		sb.WriteString(formatFloat(v))
	case time.Time:
		fmt.Fprintf(sb, "TIMESTAMP '%s'", v.Format("2006-01-02 15:04:05"))
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func formatFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	// Keep a decimal point so DuckDB treats the literal as DOUBLE.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Lit returns a literal expression. Passing an Expr returns it unchanged.
func Lit(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Expr{node: litNode{val: v}}
}

// LitValue returns the raw literal value and true when the expression is a
// plain literal leaf.
func (e Expr) LitValue() (any, bool) {
	if n, ok := e.node.(litNode); ok {
		return n.val, true
	}
	return nil, false
}

// isStringLit reports whether the expression is a string literal leaf.
func (e Expr) isStringLit() bool {
	v, ok := e.LitValue()
	if !ok {
		return false
	}
	_, isStr := v.(string)
	return isStr
}

// ---------- Not-implemented sentinel ----------

type notImplementedNode struct{}

func (notImplementedNode) render(sb *strings.Builder) {
	sb.WriteString("NULL")
}

// NotImplemented is the sentinel returned by registry callables for
// unsupported argument combinations. Emission replaces it with FALSE and
// logs a warning.
var NotImplemented = Expr{node: notImplementedNode{}}

// IsNotImplemented reports whether the expression is the sentinel.
func (e Expr) IsNotImplemented() bool {
	_, ok := e.node.(notImplementedNode)
	return ok
}

// ---------- Operators ----------

type binaryNode struct {
	op    string
	left  Expr
	right Expr
}

func (n binaryNode) render(sb *strings.Builder) {
	sb.WriteByte('(')
	n.left.node.render(sb)
	sb.WriteByte(' ')
	sb.WriteString(n.op)
	sb.WriteByte(' ')
	n.right.node.render(sb)
	sb.WriteByte(')')
}

func binary(op string, l, r Expr) Expr {
	return Expr{node: binaryNode{op: op, left: l, right: r}}
}

// Add returns l + r. String literals concatenate with ||.
func (e Expr) Add(other Expr) Expr {
	if e.isStringLit() || other.isStringLit() {
		return binary("||", e, other)
	}
	return binary("+", e, other)
}

// Sub returns e - other.
func (e Expr) Sub(other Expr) Expr { return binary("-", e, other) }

// Mul returns e * other.
func (e Expr) Mul(other Expr) Expr { return binary("*", e, other) }

// Div returns e / other.
func (e Expr) Div(other Expr) Expr { return binary("/", e, other) }

// Eq returns e = other.
func (e Expr) Eq(other Expr) Expr { return binary("=", e, other) }

// Ne returns e != other.
func (e Expr) Ne(other Expr) Expr { return binary("!=", e, other) }

// Lt returns e < other.
func (e Expr) Lt(other Expr) Expr { return binary("<", e, other) }

// Gt returns e > other.
func (e Expr) Gt(other Expr) Expr { return binary(">", e, other) }

// Le returns e <= other.
func (e Expr) Le(other Expr) Expr { return binary("<=", e, other) }

// Ge returns e >= other.
func (e Expr) Ge(other Expr) Expr { return binary(">=", e, other) }

// And returns e AND other.
func (e Expr) And(other Expr) Expr { return binary("AND", e, other) }

// Or returns e OR other.
func (e Expr) Or(other Expr) Expr { return binary("OR", e, other) }

type unaryNode struct {
	op      string
	operand Expr
}

func (n unaryNode) render(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(n.op)
	n.operand.node.render(sb)
	sb.WriteByte(')')
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	return Expr{node: unaryNode{op: "-", operand: e}}
}

// Not returns NOT e.
func (e Expr) Not() Expr {
	return Expr{node: unaryNode{op: "NOT ", operand: e}}
}

type postfixNode struct {
	operand Expr
	suffix  string
}

func (n postfixNode) render(sb *strings.Builder) {
	sb.WriteByte('(')
	n.operand.node.render(sb)
	sb.WriteString(n.suffix)
	sb.WriteByte(')')
}

// IsNull returns e IS NULL.
func (e Expr) IsNull() Expr {
	return Expr{node: postfixNode{operand: e, suffix: " IS NULL"}}
}

// IsNotNull returns e IS NOT NULL.
func (e Expr) IsNotNull() Expr {
	return Expr{node: postfixNode{operand: e, suffix: " IS NOT NULL"}}
}

// ---------- Function application ----------

type callNode struct {
	name string
	args []Expr
}

func (n callNode) render(sb *strings.Builder) {
	sb.WriteString(n.name)
	sb.WriteByte('(')
	for i, a := range n.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.node.render(sb)
	}
	sb.WriteByte(')')
}

// Call applies a named SQL function to the given arguments.
func Call(name string, args ...Expr) Expr {
	return Expr{node: callNode{name: name, args: args}}
}

type castNode struct {
	operand Expr
	typ     string
}

func (n castNode) render(sb *strings.Builder) {
	sb.WriteString("CAST(")
	n.operand.node.render(sb)
	sb.WriteString(" AS ")
	sb.WriteString(n.typ)
	sb.WriteByte(')')
}

// Cast returns CAST(e AS typ).
func (e Expr) Cast(typ string) Expr {
	return Expr{node: castNode{operand: e, typ: typ}}
}
