package thread

// Focus describes a selection's relationship to every other node: the ids
// on the path from the selection up to the root (exclusive of the
// selection), and the ids of the full subtree strictly below it.
// Recomputed on every selection change and every collapse toggle.
type Focus struct {
	Selected    int64
	Ancestors   map[int64]bool
	Descendants map[int64]bool
	Active      bool
}

// ComputeFocus walks parent pointers upward from selected collecting
// ancestor ids, then walks children downward collecting descendant ids.
// A selected id absent from the index yields empty sets and Active=false.
func ComputeFocus(index Index, selected int64) Focus {
	f := Focus{
		Selected:    selected,
		Ancestors:   make(map[int64]bool),
		Descendants: make(map[int64]bool),
	}

	node, ok := index[selected]
	if !ok {
		return f
	}
	f.Active = true

	for p := node.Parent; p != nil; p = p.Parent {
		f.Ancestors[p.ID] = true
	}

	stack := make([]*Node, 0, len(node.Children))
	stack = append(stack, node.Children...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.Descendants[cur.ID] = true
		stack = append(stack, cur.Children...)
	}

	return f
}

// InFocus reports whether a node should be rendered at full emphasis.
// A node is in focus when nothing is selected, when it is the selection
// itself, or when it is an ancestor or descendant of the selection.
// Everything else is visually de-emphasized.
func (f Focus) InFocus(id int64) bool {
	if !f.Active {
		return true
	}
	return id == f.Selected || f.Ancestors[id] || f.Descendants[id]
}
