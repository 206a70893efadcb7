// Package funcs provides the function registry consulted during formula
// emission: a read-only mapping from function name to a callable descriptor
// with declared parameter types, plus the builtin string/date/math/logic
// library.
package funcs

import (
	"fmt"
	"sort"
	"sync"
)

// ParamType describes the semantic type a callable expects for a parameter.
// Parameter types are declared as data; the emitter consults them to decide
// which raw literals must be lifted into engine expressions.
type ParamType int

// Parameter semantic types.
const (
	Any ParamType = iota
	Expression
	Number
	Integer
	String
	Boolean
)

// String returns a human-readable name for the parameter type.
func (p ParamType) String() string {
	switch p {
	case Any:
		return "any"
	case Expression:
		return "expression"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	}
	return fmt.Sprintf("paramtype(%d)", int(p))
}

// AllowsExpression reports whether an engine expression may be passed where
// this parameter type is declared. Integer and Boolean parameters demand raw
// scalars (e.g. rounding precision).
func (p ParamType) AllowsExpression() bool {
	switch p {
	case Integer, Boolean:
		return false
	}
	return true
}

// Callable is the invocation form of a registered function. Arguments are
// engine expressions or raw Go literals (string, int64, float64, bool), as
// standardized by the emitter.
type Callable func(args []any) (any, error)

// Descriptor describes a registered function.
type Descriptor struct {
	// Name is the case-sensitive registry key.
	Name string
	// Category groups the function for the documentation surface.
	Category string
	// Doc is a one-line description rendered in the function reference.
	Doc string
	// Params declares the semantic type of each parameter in order.
	Params []ParamType
	// Variadic marks the last parameter as repeatable.
	Variadic bool
	// Hidden excludes the entry from the documentation surface
	// (operator aliases and internal builders).
	Hidden bool
	// Fn is the callable itself.
	Fn Callable
}

// Registry maps function names to descriptors. It is populated during
// construction and read-only thereafter; concurrent lookups need no locking.
type Registry struct {
	byName map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Registering a duplicate name is a programming
// error and returns an error.
func (r *Registry) Register(d *Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if d.Fn == nil {
		return fmt.Errorf("descriptor %q has no callable", d.Name)
	}
	if _, ok := r.byName[d.Name]; ok {
		return fmt.Errorf("function %q already registered", d.Name)
	}
	r.byName[d.Name] = d
	return nil
}

// mustRegister registers a descriptor and panics on conflict. Used only
// while assembling the builtin registry at startup.
func (r *Registry) mustRegister(d *Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for a name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Contains reports whether the name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered functions.
func (r *Registry) Count() int {
	return len(r.byName)
}

var (
	builtinOnce sync.Once
	builtin     *Registry
)

// Builtin returns the process-wide builtin registry. It is constructed once
// at first use and never mutated afterwards.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		r := NewRegistry()
		registerCore(r)
		registerOperators(r)
		registerStringFuncs(r)
		registerDateFuncs(r)
		registerMathFuncs(r)
		registerLogicFuncs(r)
		builtin = r
	})
	return builtin
}
