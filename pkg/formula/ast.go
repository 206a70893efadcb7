package formula

// Node is one node of the parse tree. Every non-root node carries a parent
// link pointing at the node whose argument, condition, value or else slot
// holds it.
type Node interface {
	Parent() Node
	setParent(p Node)
}

// Call represents a function invocation: a reference (a token naming a
// registry function, or a nested conditional) plus ordered arguments.
// Operators become Calls during inline resolution.
type Call struct {
	Ref    Node // *Token or *Conditional
	Args   []Node
	parent Node
}

// NewCall creates a call with the given reference token.
func NewCall(ref *Token) *Call {
	c := &Call{Ref: ref}
	ref.setParent(c)
	return c
}

// newLitCall creates an identity-literal call, the neutral wrapper the
// builder seeds the tree with.
func newLitCall() *Call {
	return NewCall(&Token{Val: litFunctionName, Kind: KindFunction})
}

// litFunctionName is the engine's identity-literal function.
const litFunctionName = "pl.lit"

// colFunctionName is the engine's column-lookup function.
const colFunctionName = "pl.col"

// RefName returns the referenced function name, or "" when the reference is
// a nested conditional.
func (c *Call) RefName() string {
	if t, ok := c.Ref.(*Token); ok {
		return t.Val
	}
	return ""
}

// AddArg appends an argument and claims it.
func (c *Call) AddArg(n Node) {
	c.Args = append(c.Args, n)
	n.setParent(c)
}

// Parent returns the node holding this call.
func (c *Call) Parent() Node { return c.parent }

func (c *Call) setParent(p Node) { c.parent = p }

// Scaffold is the transient single-slot container the builder uses to hold a
// parenthesized sub-expression; finalize eliminates every one.
type Scaffold struct {
	Args   []Node
	parent Node

	// group marks scaffolds opened by an explicit parenthesis, as opposed to
	// the argument slots of a function call or conditional branch.
	group bool
}

// AddArg appends an argument and claims it.
func (s *Scaffold) AddArg(n Node) {
	s.Args = append(s.Args, n)
	n.setParent(s)
}

// Parent returns the node holding this scaffold.
func (s *Scaffold) Parent() Node { return s.parent }

func (s *Scaffold) setParent(p Node) { s.parent = p }

// ConditionPair is one (condition, value) arm of a conditional. Ref records
// the then sentinel once the value slot has been opened; until then only the
// condition slot accepts input.
type ConditionPair struct {
	Cond   Node
	Val    Node
	Ref    *Token
	parent Node
}

// Parent returns the conditional holding this pair.
func (p *ConditionPair) Parent() Node { return p.parent }

func (p *ConditionPair) setParent(n Node) { p.parent = n }

// Conditional represents an if/elseif/else/endif chain: ordered
// (condition, value) pairs plus a mandatory else value.
type Conditional struct {
	Ref    *Token
	Pairs  []*ConditionPair
	Else   Node
	parent Node
}

// NewConditional creates a conditional referencing its opening sentinel.
func NewConditional(ref *Token) *Conditional {
	c := &Conditional{Ref: ref}
	ref.setParent(c)
	return c
}

// AddPair appends a (condition, value) arm and claims it.
func (c *Conditional) AddPair(p *ConditionPair) {
	c.Pairs = append(c.Pairs, p)
	p.setParent(c)
	if p.Cond != nil {
		p.Cond.setParent(p)
	}
	if p.Val != nil {
		p.Val.setParent(p)
	}
}

// SetElse attaches the else value and claims it.
func (c *Conditional) SetElse(n Node) {
	c.Else = n
	n.setParent(c)
}

// Parent returns the node holding this conditional.
func (c *Conditional) Parent() Node { return c.parent }

func (c *Conditional) setParent(p Node) { c.parent = p }

// container is a node that accepts appended arguments during building.
type container interface {
	Node
	AddArg(n Node)
}

// depthOf returns the distance from the node to the root.
func depthOf(n Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

// enclosingConditional walks up from n to the nearest conditional ancestor,
// including n itself.
func enclosingConditional(n Node) (*Conditional, bool) {
	for cur := n; cur != nil; {
		if c, ok := cur.(*Conditional); ok {
			return c, true
		}
		cur = cur.Parent()
	}
	return nil, false
}

// enclosingCall walks up from n to the nearest call that properly encloses
// it.
func enclosingCall(n Node) (*Call, bool) {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if c, ok := cur.(*Call); ok {
			return c, true
		}
	}
	return nil, false
}
