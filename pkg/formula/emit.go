package formula

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapexpr/pkg/expr"
	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

// emitter walks a finalized tree and produces the engine expression by
// invoking registry callables with standardized argument types.
type emitter struct {
	reg    *funcs.Registry
	logger *slog.Logger
}

// emit evaluates the root and lifts the result into an engine expression.
func (e *emitter) emit(root Node) (expr.Expr, error) {
	v, err := e.eval(root)
	if err != nil {
		return expr.Expr{}, err
	}
	return funcs.AsExpr(v), nil
}

// eval evaluates a node to an engine expression or a raw literal.
func (e *emitter) eval(n Node) (any, error) {
	switch v := n.(type) {
	case *Token:
		return e.evalLeaf(v)
	case *Call:
		return e.evalCall(v)
	case *Conditional:
		return e.evalConditional(v)
	case *Scaffold:
		return nil, &MalformedTreeError{Message: "scaffold reached emission"}
	}
	return nil, &MalformedTreeError{Message: fmt.Sprintf("unexpected node %T", n)}
}

func (e *emitter) evalLeaf(t *Token) (any, error) {
	switch t.Kind {
	case KindNumber:
		if strings.Contains(t.Val, ".") {
			return strconv.ParseFloat(t.Val, 64)
		}
		return strconv.ParseInt(t.Val, 10, 64)
	case KindBoolean:
		return strings.EqualFold(t.Val, "true"), nil
	case KindSpecial:
		// The unary-minus marker evaluates to -1, so -x became -1 * x.
		return int64(-1), nil
	case KindColumn:
		return expr.Col(t.Val), nil
	case KindString:
		if len(t.Val) >= 2 && strings.HasPrefix(t.Val, `"`) && strings.HasSuffix(t.Val, `"`) {
			return t.Val[1 : len(t.Val)-1], nil
		}
		return t.Val, nil
	case KindOperator:
		return nil, &MalformedTreeError{Message: fmt.Sprintf("unresolved operator %q in argument list", t.Val)}
	}
	return nil, &MalformedTreeError{Message: fmt.Sprintf("cannot evaluate %s token %q", t.Kind, t.Val)}
}

func (e *emitter) evalCall(c *Call) (any, error) {
	if ref, ok := c.Ref.(*Conditional); ok {
		if len(c.Args) > 0 {
			return nil, &MalformedTreeError{Message: "conditional reference with arguments"}
		}
		return e.evalConditional(ref)
	}

	name := c.RefName()

	// The identity literal passes engine expressions through unchanged.
	if name == litFunctionName {
		if len(c.Args) != 1 {
			return nil, &MalformedTreeError{
				Message: fmt.Sprintf("%s expects exactly 1 argument, got %d", litFunctionName, len(c.Args)),
			}
		}
		v, err := e.eval(c.Args[0])
		if err != nil {
			return nil, err
		}
		if ex, ok := v.(expr.Expr); ok {
			return ex, nil
		}
		return e.invoke(name, []any{v})
	}

	args := make([]any, len(c.Args))
	for i, a := range c.Args {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	args = alignNumericTypes(args)
	args, err := e.standardizeArgs(name, args)
	if err != nil {
		return nil, err
	}
	return e.invoke(name, args)
}

func (e *emitter) invoke(name string, args []any) (any, error) {
	desc, ok := e.reg.Lookup(name)
	if !ok {
		return nil, &UnknownFunctionError{Name: name}
	}
	result, err := desc.Fn(args)
	if err != nil {
		return nil, err
	}
	if ex, ok := result.(expr.Expr); ok && ex.IsNotImplemented() {
		e.logger.Warn("function not implemented for argument combination", "function", name)
		return false, nil
	}
	return result, nil
}

// alignNumericTypes promotes every argument to floating point when the list
// mixes raw integers and raw floats. Lists containing engine expressions or
// non-numeric values are untouched.
func alignNumericTypes(args []any) []any {
	hasInt, hasFloat := false, false
	for _, a := range args {
		switch a.(type) {
		case int64:
			hasInt = true
		case float64:
			hasFloat = true
		default:
			return args
		}
	}
	if !hasInt || !hasFloat {
		return args
	}
	out := make([]any, len(args))
	for i, a := range args {
		if v, ok := a.(int64); ok {
			out[i] = float64(v)
		} else {
			out[i] = a
		}
	}
	return out
}

// standardizeArgs lifts raw literals into engine literals when the argument
// list mixes engine expressions with raw values. The registry's declared
// parameter types decide which raw literals must stay raw.
func (e *emitter) standardizeArgs(name string, args []any) ([]any, error) {
	hasExpr, hasRaw := false, false
	for _, a := range args {
		if _, ok := a.(expr.Expr); ok {
			hasExpr = true
		} else {
			hasRaw = true
		}
	}
	if !hasExpr || !hasRaw {
		return args, nil
	}

	desc, ok := e.reg.Lookup(name)
	if !ok {
		return nil, &UnknownFunctionError{Name: name}
	}

	out := make([]any, len(args))
	for i, a := range args {
		if _, ok := a.(expr.Expr); ok {
			out[i] = a
			continue
		}
		if i < len(desc.Params) && !desc.Params[i].AllowsExpression() {
			out[i] = a
			continue
		}
		out[i] = expr.Lit(a)
	}
	return out, nil
}

func (e *emitter) evalConditional(c *Conditional) (any, error) {
	if len(c.Pairs) == 0 {
		return nil, &MalformedTreeError{Message: "conditional has no condition"}
	}
	if c.Else == nil {
		return nil, &MalformedTreeError{Message: "conditional has no else value"}
	}

	toExpr := func(n Node) (expr.Expr, error) {
		v, err := e.eval(n)
		if err != nil {
			return expr.Expr{}, err
		}
		return funcs.AsExpr(v), nil
	}

	cond, err := toExpr(c.Pairs[0].Cond)
	if err != nil {
		return nil, err
	}
	val, err := toExpr(c.Pairs[0].Val)
	if err != nil {
		return nil, err
	}
	chain := expr.When(cond).Then(val)

	for _, p := range c.Pairs[1:] {
		cond, err := toExpr(p.Cond)
		if err != nil {
			return nil, err
		}
		val, err := toExpr(p.Val)
		if err != nil {
			return nil, err
		}
		chain = chain.When(cond).Then(val)
	}

	otherwise, err := toExpr(c.Else)
	if err != nil {
		return nil, err
	}
	return chain.Otherwise(otherwise), nil
}
