package formula

import "strconv"

// Finalize collapses every scaffold in the tree, re-parenting its sole child
// into the slot the scaffold occupied. A scaffold holding anything but
// exactly one child is a malformed tree. The returned node is the new root.
func Finalize(root Node) (Node, error) {
	root, err := finalizeNode(root)
	if err != nil {
		return nil, err
	}
	root.setParent(nil)
	if _, ok := findScaffold(root); ok {
		return nil, &MalformedTreeError{Message: "scaffold survived finalize"}
	}
	return root, nil
}

// finalizeNode returns the replacement for n with all scaffolds below it
// collapsed.
func finalizeNode(n Node) (Node, error) {
	switch v := n.(type) {
	case *Scaffold:
		if len(v.Args) != 1 {
			return nil, &MalformedTreeError{
				Message: "scaffold holds " + strconv.Itoa(len(v.Args)) + " children, expected exactly 1",
			}
		}
		child := v.Args[0]
		child.setParent(v.Parent())
		return finalizeNode(child)

	case *Call:
		if ref, ok := v.Ref.(*Conditional); ok {
			replaced, err := finalizeNode(ref)
			if err != nil {
				return nil, err
			}
			v.Ref = replaced
			replaced.setParent(v)
		}
		for i, a := range v.Args {
			replaced, err := finalizeNode(a)
			if err != nil {
				return nil, err
			}
			v.Args[i] = replaced
			replaced.setParent(v)
		}
		return v, nil

	case *Conditional:
		for _, p := range v.Pairs {
			cond, err := finalizeNode(p.Cond)
			if err != nil {
				return nil, err
			}
			p.Cond = cond
			cond.setParent(p)

			val, err := finalizeNode(p.Val)
			if err != nil {
				return nil, err
			}
			p.Val = val
			val.setParent(p)
		}
		if v.Else != nil {
			els, err := finalizeNode(v.Else)
			if err != nil {
				return nil, err
			}
			v.Else = els
			els.setParent(v)
		}
		return v, nil
	}
	return n, nil
}

// findScaffold walks the finalized tree looking for a surviving scaffold.
func findScaffold(n Node) (*Scaffold, bool) {
	switch v := n.(type) {
	case *Scaffold:
		return v, true
	case *Call:
		if s, ok := findScaffold(v.Ref); ok {
			return s, true
		}
		for _, a := range v.Args {
			if s, ok := findScaffold(a); ok {
				return s, true
			}
		}
	case *Conditional:
		for _, p := range v.Pairs {
			if s, ok := findScaffold(p.Cond); ok {
				return s, true
			}
			if s, ok := findScaffold(p.Val); ok {
				return s, true
			}
		}
		if v.Else != nil {
			if s, ok := findScaffold(v.Else); ok {
				return s, true
			}
		}
	}
	return nil, false
}
