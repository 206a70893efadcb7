package funcs

import (
	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

func registerStringFuncs(r *Registry) {
	const cat = "string"

	r.mustRegister(&Descriptor{
		Name:     "concat",
		Category: cat,
		Doc:      "Concatenate two or more values into one string.",
		Params:   []ParamType{Expression, Expression},
		Variadic: true,
		Fn: func(args []any) (any, error) {
			if err := wantAtLeast("concat", args, 2); err != nil {
				return nil, err
			}
			exprs := make([]expr.Expr, len(args))
			for i, a := range args {
				exprs[i] = AsExpr(a)
			}
			return expr.Call("concat", exprs...), nil
		},
	})

	r.mustRegister(&Descriptor{
		Name:     "length",
		Category: cat,
		Doc:      "Number of characters in a string.",
		Params:   []ParamType{Expression},
		Fn:       unary("length", func(e expr.Expr) expr.Expr { return expr.Call("length", e) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "left",
		Category: cat,
		Doc:      "Leftmost n characters of a string.",
		Params:   []ParamType{Expression, Expression},
		Fn:       binaryExprs("left", func(s, n expr.Expr) expr.Expr { return expr.Call("left", s, n) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "right",
		Category: cat,
		Doc:      "Rightmost n characters of a string.",
		Params:   []ParamType{Expression, Expression},
		Fn:       binaryExprs("right", func(s, n expr.Expr) expr.Expr { return expr.Call("right", s, n) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "replace",
		Category: cat,
		Doc:      "Replace all occurrences of a substring.",
		Params:   []ParamType{Expression, Expression, Expression},
		Fn: func(args []any) (any, error) {
			if err := wantArgs("replace", args, 3); err != nil {
				return nil, err
			}
			return expr.Call("replace", AsExpr(args[0]), AsExpr(args[1]), AsExpr(args[2])), nil
		},
	})

	r.mustRegister(&Descriptor{
		Name:     "contains",
		Category: cat,
		Doc:      "Whether a string contains a substring.",
		Params:   []ParamType{Expression, Expression},
		Fn:       binaryExprs("contains", func(s, sub expr.Expr) expr.Expr { return expr.Call("contains", s, sub) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "count_match",
		Category: cat,
		Doc:      "Count non-overlapping occurrences of a pattern in a string.",
		Params:   []ParamType{Expression, Expression},
		Fn: binaryExprs("count_match", func(s, pat expr.Expr) expr.Expr {
			return expr.Call("len", expr.Call("regexp_extract_all", s, pat))
		}),
	})

	r.mustRegister(&Descriptor{
		Name:     "find_position",
		Category: cat,
		Doc:      "1-based position of the first occurrence of a substring, 0 when absent.",
		Params:   []ParamType{Expression, Expression},
		Fn:       binaryExprs("find_position", func(s, sub expr.Expr) expr.Expr { return expr.Call("strpos", s, sub) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "uppercase",
		Category: cat,
		Doc:      "Convert a string to upper case.",
		Params:   []ParamType{Expression},
		Fn:       unary("uppercase", func(e expr.Expr) expr.Expr { return expr.Call("upper", e) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "lowercase",
		Category: cat,
		Doc:      "Convert a string to lower case.",
		Params:   []ParamType{Expression},
		Fn:       unary("lowercase", func(e expr.Expr) expr.Expr { return expr.Call("lower", e) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "trim",
		Category: cat,
		Doc:      "Strip leading and trailing whitespace.",
		Params:   []ParamType{Expression},
		Fn:       unary("trim", func(e expr.Expr) expr.Expr { return expr.Call("trim", e) }),
	})

	r.mustRegister(&Descriptor{
		Name:     "to_string",
		Category: cat,
		Doc:      "Cast a value to its string representation.",
		Params:   []ParamType{Expression},
		Fn:       unary("to_string", func(e expr.Expr) expr.Expr { return e.Cast("VARCHAR") }),
	})

	r.mustRegister(&Descriptor{
		Name:     "pad_left",
		Category: cat,
		Doc:      "Left-pad a string to a given width with a fill character.",
		Params:   []ParamType{Expression, Expression, Expression},
		Fn: func(args []any) (any, error) {
			if err := wantArgs("pad_left", args, 3); err != nil {
				return nil, err
			}
			return expr.Call("lpad", AsExpr(args[0]), AsExpr(args[1]), AsExpr(args[2])), nil
		},
	})
}
