package funcs

import (
	"fmt"

	"github.com/leapstack-labs/leapexpr/pkg/expr"
)

// Names of the core entries every registry must carry.
const (
	LitName      = "pl.lit"
	ColName      = "pl.col"
	NegationName = "negation"
)

// registerCore adds the literal and column constructors, negation, and the
// hidden conditional-chain builders.
func registerCore(r *Registry) {
	r.mustRegister(&Descriptor{
		Name:     LitName,
		Category: "core",
		Doc:      "Wrap a raw value as an engine literal; engine expressions pass through unchanged.",
		Params:   []ParamType{Any},
		Fn: func(args []any) (any, error) {
			if err := wantArgs(LitName, args, 1); err != nil {
				return nil, err
			}
			return AsExpr(args[0]), nil
		},
	})

	r.mustRegister(&Descriptor{
		Name:     ColName,
		Category: "core",
		Doc:      "Reference a table column by name.",
		Params:   []ParamType{String},
		Fn: func(args []any) (any, error) {
			if err := wantArgs(ColName, args, 1); err != nil {
				return nil, err
			}
			name, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("%s expects a column name string, got %T", ColName, args[0])
			}
			return expr.Col(name), nil
		},
	})

	r.mustRegister(&Descriptor{
		Name:     NegationName,
		Category: "math",
		Doc:      "Negate a numeric value.",
		Params:   []ParamType{Number},
		Fn: func(args []any) (any, error) {
			if err := wantArgs(NegationName, args, 1); err != nil {
				return nil, err
			}
			if isRawNumber(args[0]) {
				switch v := args[0].(type) {
				case int64:
					return -v, nil
				case int:
					return int64(-v), nil
				case float64:
					return -v, nil
				}
			}
			return AsExpr(args[0]).Neg(), nil
		},
	})

	// Conditional-chain builders. Emission constructs when/then/otherwise
	// chains directly on the engine API; these entries exist so the chain is
	// addressable by name. They are hidden from the function reference.
	r.mustRegister(&Descriptor{
		Name:     "when",
		Category: "conditional",
		Doc:      "Start a conditional chain from a boolean condition.",
		Params:   []ParamType{Expression},
		Hidden:   true,
		Fn: func(args []any) (any, error) {
			if err := wantArgs("when", args, 1); err != nil {
				return nil, err
			}
			return expr.When(AsExpr(args[0])), nil
		},
	})
	r.mustRegister(&Descriptor{
		Name:     "otherwise",
		Category: "conditional",
		Doc:      "Close a conditional chain with the fallback value.",
		Params:   []ParamType{Any, Expression},
		Hidden:   true,
		Fn: func(args []any) (any, error) {
			if err := wantArgs("otherwise", args, 2); err != nil {
				return nil, err
			}
			chain, ok := args[0].(*expr.CaseChain)
			if !ok {
				return nil, fmt.Errorf("otherwise expects a conditional chain, got %T", args[0])
			}
			return chain.Otherwise(AsExpr(args[1])), nil
		},
	})
}
