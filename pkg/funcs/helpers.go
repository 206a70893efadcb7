package funcs

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

// AsExpr lifts a raw literal into an engine expression. Engine expressions
// pass through unchanged.
func AsExpr(v any) expr.Expr {
	if e, ok := v.(expr.Expr); ok {
		return e
	}
	return expr.Lit(v)
}

// isExpr reports whether the value is already an engine expression.
func isExpr(v any) bool {
	_, ok := v.(expr.Expr)
	return ok
}

// isRawNumber reports whether the value is a raw numeric literal.
func isRawNumber(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	return false
}

// asFloat converts a raw numeric literal to float64.
func asFloat(v any) float64 {
	return cast.ToFloat64(v)
}

// asInt converts a raw literal to an int, for scalar-only parameters such as
// rounding precision.
func asInt(v any) (int, error) {
	return cast.ToIntE(v)
}

// wantArgs fails unless exactly n arguments were supplied.
func wantArgs(name string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// wantAtLeast fails unless n or more arguments were supplied.
func wantAtLeast(name string, args []any, n int) error {
	if len(args) < n {
		return fmt.Errorf("%s expects at least %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// unary wraps a single-expression transform as a Callable.
func unary(name string, fn func(e expr.Expr) expr.Expr) Callable {
	return func(args []any) (any, error) {
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		return fn(AsExpr(args[0])), nil
	}
}

// binaryExprs wraps a two-expression transform as a Callable.
func binaryExprs(name string, fn func(l, r expr.Expr) expr.Expr) Callable {
	return func(args []any) (any, error) {
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		return fn(AsExpr(args[0]), AsExpr(args[1])), nil
	}
}
