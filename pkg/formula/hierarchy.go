package formula

// DefaultMaxDepth bounds tree nesting unless configured otherwise.
const DefaultMaxDepth = 256

// BuildHierarchy shifts classified tokens into a raw tree of calls,
// conditionals and scaffolds. The tree may still contain scaffold nodes and
// bare operator leaves inside argument lists; later passes resolve both.
//
// The tree is seeded with an identity-literal call whose arguments accumulate
// the top-level expression. A closing bracket at the top level wraps that root
// in an outer scaffold, which is then the returned root.
func BuildHierarchy(toks []*Token, maxDepth int) (Node, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	b := &hierarchyBuilder{maxDepth: maxDepth}
	return b.build(toks)
}

type hierarchyBuilder struct {
	maxDepth int
	root     Node
	openIfs  int
}

func (b *hierarchyBuilder) build(toks []*Token) (Node, error) {
	rootCall := newLitCall()
	b.root = rootCall
	var cur Node = rootCall

	for i := 0; i < len(toks); i++ {
		tk := toks[i]
		var err error

		switch {
		case tk.Kind == KindPrio && tk.Val == "(":
			cur, err = b.handleOpeningBracket(cur)
		case tk.Kind == KindPrio && tk.Val == ")":
			cur, err = b.handleClosingBracket(cur)
		case tk.Kind == KindSep:
			cur, err = b.handleSeparator(cur, rootCall)
		case tk.Kind == KindFunction:
			cur, i, err = b.handleFunction(cur, toks, i)
		case tk.Kind == KindCaseWhen:
			cur, i, err = b.handleCaseWhen(cur, toks, i)
		default:
			// Literals, columns, operators and the negative marker all land
			// in the current argument list.
			err = b.appendTo(cur, tk)
		}
		if err != nil {
			return nil, err
		}
	}

	if b.openIfs > 0 {
		return nil, &MissingEndifError{Offset: -1}
	}
	return b.root, nil
}

// appendTo adds a node to the current insertion point, which must be a call
// or scaffold.
func (b *hierarchyBuilder) appendTo(cur Node, n Node) error {
	c, ok := cur.(container)
	if !ok {
		return &UnexpectedTokenError{
			Offset:  -1,
			Token:   describeNode(n),
			Message: "no open argument list to receive it",
		}
	}
	c.AddArg(n)
	return nil
}

func describeNode(n Node) string {
	if t, ok := n.(*Token); ok {
		return t.Val
	}
	return "expression"
}

// handleOpeningBracket opens a grouping scaffold. Function calls and
// conditional branches consume their own opening bracket, so any bracket
// reaching the dispatch starts an explicit group.
func (b *hierarchyBuilder) handleOpeningBracket(cur Node) (Node, error) {
	s := &Scaffold{group: true}
	if err := b.appendTo(cur, s); err != nil {
		return nil, err
	}
	if err := b.checkDepth(s); err != nil {
		return nil, err
	}
	return s, nil
}

// handleClosingBracket moves the insertion point up: a group closes to its
// holder, a function-argument scaffold closes the whole call, a condition or
// value branch closes to its pair and an else branch to its conditional. A
// closing bracket at the root wraps the tree in a fresh outer scaffold.
func (b *hierarchyBuilder) handleClosingBracket(cur Node) (Node, error) {
	switch n := cur.(type) {
	case *Scaffold:
		p := n.Parent()
		if p == nil {
			return b.wrapRoot(cur), nil
		}
		if n.group {
			return p, nil
		}
		switch holder := p.(type) {
		case *Call:
			if holder.Parent() == nil {
				return b.wrapRoot(holder), nil
			}
			return holder.Parent(), nil
		default:
			// Condition, value or else slot: hand control back to the pair
			// or conditional so the next sentinel finds its context.
			return p, nil
		}
	case *Call:
		if n.Parent() == nil {
			return b.wrapRoot(n), nil
		}
		return n.Parent(), nil
	case *Conditional:
		if n.Parent() == nil {
			return b.wrapRoot(n), nil
		}
		return n.Parent(), nil
	}
	return nil, &UnexpectedTokenError{Offset: -1, Token: ")", Message: "no matching opening bracket"}
}

// wrapRoot boxes the current root in a fresh outer scaffold, which finalize
// later removes.
func (b *hierarchyBuilder) wrapRoot(root Node) Node {
	s := &Scaffold{}
	s.AddArg(root)
	b.root = s
	return s
}

// handleSeparator starts the next argument of the enclosing function call.
func (b *hierarchyBuilder) handleSeparator(cur Node, rootCall *Call) (Node, error) {
	call, ok := enclosingCall(cur)
	if c, isCall := cur.(*Call); isCall && !ok {
		call, ok = c, true
	}
	if !ok || call == rootCall {
		return nil, &UnexpectedTokenError{Offset: -1, Token: ",", Message: "separator outside a function call"}
	}
	s := &Scaffold{}
	call.AddArg(s)
	return s, nil
}

// handleFunction opens a call with a fresh argument scaffold. Every function
// except the synthetic negation must be followed by an opening bracket,
// which is consumed here.
func (b *hierarchyBuilder) handleFunction(cur Node, toks []*Token, i int) (Node, int, error) {
	call := NewCall(toks[i])
	s := &Scaffold{}
	call.AddArg(s)
	if err := b.appendTo(cur, call); err != nil {
		return nil, i, err
	}
	if err := b.checkDepth(s); err != nil {
		return nil, i, err
	}
	if toks[i].Val != NegationName {
		var err error
		i, err = b.consumeOpen(toks, i)
		if err != nil {
			return nil, i, err
		}
	}
	return s, i, nil
}

// NegationName is the one function allowed to appear without brackets. The
// unary-minus pass does not produce it; it inserts the __negative() marker.
const NegationName = "negation"

// handleCaseWhen dispatches the conditional keyword sentinels.
func (b *hierarchyBuilder) handleCaseWhen(cur Node, toks []*Token, i int) (Node, int, error) {
	tk := toks[i]
	switch tk.Val {
	case sentinelIf:
		cond := NewConditional(tk)
		if err := b.appendTo(cur, cond); err != nil {
			return nil, i, err
		}
		pair := &ConditionPair{Cond: &Scaffold{}, Val: &Scaffold{}}
		cond.AddPair(pair)
		if err := b.checkDepth(pair.Cond); err != nil {
			return nil, i, err
		}
		i, err := b.consumeOpen(toks, i)
		if err != nil {
			return nil, i, err
		}
		b.openIfs++
		return pair.Cond, i, nil

	case sentinelThen:
		pair, ok := currentPair(cur)
		if !ok {
			return nil, i, &UnexpectedTokenError{Offset: -1, Token: "then", Message: "not inside a condition"}
		}
		if pair.Ref != nil {
			return nil, i, &UnexpectedTokenError{Offset: -1, Token: "then", Message: "condition already has a value branch"}
		}
		pair.Ref = tk
		i, err := b.consumeOpen(toks, i)
		if err != nil {
			return nil, i, err
		}
		return pair.Val, i, nil

	case sentinelElseif:
		cond, ok := enclosingConditional(cur)
		if !ok {
			return nil, i, &UnexpectedTokenError{Offset: -1, Token: "elseif", Message: "no open conditional"}
		}
		pair := &ConditionPair{Cond: &Scaffold{}, Val: &Scaffold{}}
		cond.AddPair(pair)
		i, err := b.consumeOpen(toks, i)
		if err != nil {
			return nil, i, err
		}
		return pair.Cond, i, nil

	case sentinelElse:
		cond, ok := enclosingConditional(cur)
		if !ok {
			return nil, i, &UnexpectedTokenError{Offset: -1, Token: "else", Message: "no open conditional"}
		}
		s := &Scaffold{}
		cond.SetElse(s)
		i, err := b.consumeOpen(toks, i)
		if err != nil {
			return nil, i, err
		}
		return s, i, nil

	case sentinelEndif:
		cond, ok := enclosingConditional(cur)
		if !ok {
			return nil, i, &UnexpectedTokenError{Offset: -1, Token: "endif", Message: "no open conditional"}
		}
		if cond.Else == nil {
			return nil, i, &UnexpectedTokenError{Offset: -1, Token: "endif", Message: "conditional has no else branch"}
		}
		b.openIfs--
		if cond.Parent() == nil {
			return cond, i, nil
		}
		return cond.Parent(), i, nil
	}
	return nil, i, &UnexpectedTokenError{Offset: -1, Token: tk.Val, Message: "unknown conditional keyword"}
}

// currentPair resolves the condition pair whose condition slot the insertion
// point rests on: the pair itself after its condition closed, or the
// condition scaffold directly. The value slot never qualifies.
func currentPair(cur Node) (*ConditionPair, bool) {
	switch n := cur.(type) {
	case *ConditionPair:
		return n, true
	case *Scaffold:
		if p, ok := n.Parent().(*ConditionPair); ok && p.Cond == Node(n) {
			return p, true
		}
	}
	return nil, false
}

// consumeOpen requires and consumes an opening bracket after toks[i].
func (b *hierarchyBuilder) consumeOpen(toks []*Token, i int) (int, error) {
	if i+1 >= len(toks) || toks[i+1].Kind != KindPrio || toks[i+1].Val != "(" {
		return i, &MissingBracketError{Offset: -1, After: toks[i].Val}
	}
	return i + 1, nil
}

// checkDepth enforces the configured nesting limit.
func (b *hierarchyBuilder) checkDepth(n Node) error {
	if depthOf(n) > b.maxDepth {
		return &NestingLimitError{Limit: b.maxDepth}
	}
	return nil
}
