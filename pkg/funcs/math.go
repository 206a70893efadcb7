package funcs

import (
	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

func registerMathFuncs(r *Registry) {
	const cat = "math"

	singles := []struct{ name, sqlFn, doc string }{
		{"log", "ln", "Natural logarithm."},
		{"exp", "exp", "Exponential function."},
		{"sqrt", "sqrt", "Square root."},
		{"abs", "abs", "Absolute value."},
		{"sin", "sin", "Sine."},
		{"cos", "cos", "Cosine."},
		{"tan", "tan", "Tangent."},
		{"tanh", "tanh", "Hyperbolic tangent."},
		{"asin", "asin", "Inverse sine."},
		{"ceil", "ceil", "Round up to the nearest integer."},
		{"floor", "floor", "Round down to the nearest integer."},
	}
	for _, s := range singles {
		sqlFn := s.sqlFn
		r.mustRegister(&Descriptor{
			Name:     s.name,
			Category: cat,
			Doc:      s.doc,
			Params:   []ParamType{Number},
			Fn:       unary(s.name, func(e expr.Expr) expr.Expr { return expr.Call(sqlFn, e) }),
		})
	}

	r.mustRegister(&Descriptor{
		Name:     "round",
		Category: cat,
		Doc:      "Round to the nearest integer, or to a number of decimal places.",
		Params:   []ParamType{Number, Integer},
		Variadic: true,
		Fn: func(args []any) (any, error) {
			if err := wantAtLeast("round", args, 1); err != nil {
				return nil, err
			}
			if len(args) == 1 {
				return expr.Call("round", AsExpr(args[0])), nil
			}
			decimals, err := asInt(args[1])
			if err != nil {
				return nil, err
			}
			return expr.Call("round", AsExpr(args[0]), expr.Lit(int64(decimals))), nil
		},
	})

	r.mustRegister(&Descriptor{
		Name:     "to_number",
		Category: cat,
		Doc:      "Cast a value to a floating-point number.",
		Params:   []ParamType{Expression},
		Fn:       unary("to_number", func(e expr.Expr) expr.Expr { return e.Cast("DOUBLE") }),
	})
}
