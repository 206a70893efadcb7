package funcs

import (
	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

func registerLogicFuncs(r *Registry) {
	const cat = "logic"

	r.mustRegister(&Descriptor{
		Name:     "not",
		Category: cat,
		Doc:      "Logical negation.",
		Params:   []ParamType{Expression},
		Fn: func(args []any) (any, error) {
			if err := wantArgs("not", args, 1); err != nil {
				return nil, err
			}
			if b, ok := args[0].(bool); ok {
				return !b, nil
			}
			return AsExpr(args[0]).Not(), nil
		},
	})

	r.mustRegister(&Descriptor{
		Name:     "is_empty",
		Category: cat,
		Doc:      "Whether a value is null.",
		Params:   []ParamType{Expression},
		Fn:       unary("is_empty", expr.Expr.IsNull),
	})

	r.mustRegister(&Descriptor{
		Name:     "is_not_empty",
		Category: cat,
		Doc:      "Whether a value is present.",
		Params:   []ParamType{Expression},
		Fn:       unary("is_not_empty", expr.Expr.IsNotNull),
	})
}
