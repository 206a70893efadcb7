package formula

import (
	"log/slog"

	"github.com/leapstack-labs/leapexpr/pkg/expr"
	"github.com/leapstack-labs/leapexpr/pkg/funcs"
)

// Compiler turns formula strings into engine expressions. It holds a
// read-only registry reference and is safe for concurrent use; every compile
// owns its tree exclusively from build through emit.
type Compiler struct {
	reg      *funcs.Registry
	maxDepth int
	logger   *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithMaxDepth overrides the maximum nesting depth (default 256).
func WithMaxDepth(depth int) Option {
	return func(c *Compiler) {
		c.maxDepth = depth
	}
}

// WithLogger overrides the logger used for emission warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New creates a compiler over the given registry.
func New(reg *funcs.Registry, opts ...Option) *Compiler {
	c := &Compiler{
		reg:      reg,
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile runs the full pipeline: preprocess, tokenize, classify, build
// hierarchy, resolve inline operators, finalize, emit.
func (c *Compiler) Compile(expression string) (expr.Expr, error) {
	root, err := c.Parse(expression)
	if err != nil {
		return expr.Expr{}, err
	}
	em := &emitter{reg: c.reg, logger: c.logger}
	return em.emit(root)
}

// Parse runs the pipeline up to and including finalize, returning the typed
// tree. Useful for inspecting the plan without emitting.
func (c *Compiler) Parse(expression string) (Node, error) {
	canonical, err := Preprocess(expression)
	if err != nil {
		return nil, err
	}
	raw, err := Tokenize(canonical)
	if err != nil {
		return nil, err
	}
	toks := ClassifyTokens(raw, c.reg)
	toks, err = DisambiguateMinus(toks, c.reg)
	if err != nil {
		return nil, err
	}
	root, err := BuildHierarchy(toks, c.maxDepth)
	if err != nil {
		return nil, err
	}
	ResolveInlineOperators(root)
	return Finalize(root)
}

// Compile compiles an expression against the builtin registry.
func Compile(expression string) (expr.Expr, error) {
	return New(funcs.Builtin()).Compile(expression)
}
