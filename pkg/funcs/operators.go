package funcs

import (
	"strings"

	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

// registerOperators adds one entry per operator of the expression language.
// Operators are functions after inline resolution; each entry is keyed by its
// surface symbol. When both operands arrive as raw literals of a kind the
// operator folds (numbers for arithmetic, numbers or strings for + and
// comparisons, booleans for and/or, strings for in) the result is folded to a
// raw value, mirroring how plain arithmetic behaves outside the engine; other
// combinations go through the engine.
func registerOperators(r *Registry) {
	ops := []struct {
		symbol string
		doc    string
		fn     Callable
	}{
		{"+", "Add two numbers, or concatenate strings.", addOp},
		{"-", "Subtract the right operand from the left.", arithmeticOp("-", func(l, r float64) float64 { return l - r }, expr.Expr.Sub)},
		{"*", "Multiply two numbers.", arithmeticOp("*", func(l, r float64) float64 { return l * r }, expr.Expr.Mul)},
		{"/", "Divide the left operand by the right.", arithmeticOp("/", func(l, r float64) float64 { return l / r }, expr.Expr.Div)},
		{"=", "Equal to.", comparisonOp("=", func(c int) bool { return c == 0 }, expr.Expr.Eq)},
		{"!=", "Not equal to.", comparisonOp("!=", func(c int) bool { return c != 0 }, expr.Expr.Ne)},
		{"<", "Less than.", comparisonOp("<", func(c int) bool { return c < 0 }, expr.Expr.Lt)},
		{">", "Greater than.", comparisonOp(">", func(c int) bool { return c > 0 }, expr.Expr.Gt)},
		{"<=", "Less than or equal to.", comparisonOp("<=", func(c int) bool { return c <= 0 }, expr.Expr.Le)},
		{">=", "Greater than or equal to.", comparisonOp(">=", func(c int) bool { return c >= 0 }, expr.Expr.Ge)},
		{"and", "Logical conjunction.", logicalOp("and", func(l, r bool) bool { return l && r }, expr.Expr.And)},
		{"or", "Logical disjunction.", logicalOp("or", func(l, r bool) bool { return l || r }, expr.Expr.Or)},
		{"in", "Substring containment: left appears within right.", inOp},
	}

	for _, op := range ops {
		r.mustRegister(&Descriptor{
			Name:     op.symbol,
			Category: "operator",
			Doc:      op.doc,
			Params:   []ParamType{Expression, Expression},
			Fn:       op.fn,
		})
	}
}

// addOp folds raw numbers and raw strings; anything else goes through the
// engine, which handles string-literal concatenation itself.
func addOp(args []any) (any, error) {
	if err := wantArgs("+", args, 2); err != nil {
		return nil, err
	}
	l, r := args[0], args[1]
	if isRawNumber(l) && isRawNumber(r) {
		return foldArithmetic(l, r, func(a, b float64) float64 { return a + b }), nil
	}
	ls, lok := l.(string)
	rs, rok := r.(string)
	if lok && rok {
		return ls + rs, nil
	}
	return AsExpr(l).Add(AsExpr(r)), nil
}

func arithmeticOp(symbol string, fold func(l, r float64) float64, apply func(l, r expr.Expr) expr.Expr) Callable {
	return func(args []any) (any, error) {
		if err := wantArgs(symbol, args, 2); err != nil {
			return nil, err
		}
		l, r := args[0], args[1]
		if isRawNumber(l) && isRawNumber(r) {
			return foldArithmetic(l, r, fold), nil
		}
		return apply(AsExpr(l), AsExpr(r)), nil
	}
}

// foldArithmetic computes on raw numbers, staying integral when both
// operands are integral and the result is whole.
func foldArithmetic(l, r any, fold func(l, r float64) float64) any {
	result := fold(asFloat(l), asFloat(r))
	_, lf := l.(float64)
	_, rf := r.(float64)
	if !lf && !rf && result == float64(int64(result)) {
		return int64(result)
	}
	return result
}

func comparisonOp(symbol string, test func(cmp int) bool, apply func(l, r expr.Expr) expr.Expr) Callable {
	return func(args []any) (any, error) {
		if err := wantArgs(symbol, args, 2); err != nil {
			return nil, err
		}
		l, r := args[0], args[1]
		if isRawNumber(l) && isRawNumber(r) {
			return test(compareFloats(asFloat(l), asFloat(r))), nil
		}
		ls, lok := l.(string)
		rs, rok := r.(string)
		if lok && rok {
			return test(strings.Compare(ls, rs)), nil
		}
		return apply(AsExpr(l), AsExpr(r)), nil
	}
}

func compareFloats(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func logicalOp(symbol string, fold func(l, r bool) bool, apply func(l, r expr.Expr) expr.Expr) Callable {
	return func(args []any) (any, error) {
		if err := wantArgs(symbol, args, 2); err != nil {
			return nil, err
		}
		lb, lok := args[0].(bool)
		rb, rok := args[1].(bool)
		if lok && rok {
			return fold(lb, rb), nil
		}
		return apply(AsExpr(args[0]), AsExpr(args[1])), nil
	}
}

// inOp compiles `needle in haystack`, reversing the operand order into a
// containment call.
func inOp(args []any) (any, error) {
	if err := wantArgs("in", args, 2); err != nil {
		return nil, err
	}
	needle, haystack := args[0], args[1]
	ns, nok := needle.(string)
	hs, hok := haystack.(string)
	if nok && hok {
		return strings.Contains(hs, ns), nil
	}
	return expr.Call("contains", AsExpr(haystack), AsExpr(needle)), nil
}

// OperatorSymbols returns the surface symbols of all registered operators,
// for the documentation surface.
func OperatorSymbols() []string {
	return []string{"+", "-", "*", "/", "=", "!=", "<", ">", "<=", ">=", "and", "or", "in"}
}
