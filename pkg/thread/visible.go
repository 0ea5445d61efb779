package thread

// Visible returns a pruned structural copy of the full tree honoring the
// collapsed set: every node is shallow-cloned, and a node whose id is in
// collapsed yields an empty children slice in the copy regardless of how
// many children it truly has.
//
// Visible is a pure function: it never mutates root or collapsed. The
// clones share Item pointers and metric values with the source nodes, so a
// collapse toggle costs one O(visible) copy rather than a deep clone of
// item data. Geometry fields start zeroed; layouts write them on the copy.
func Visible(root *Node, collapsed map[int64]bool) *Node {
	if root == nil {
		return nil
	}

	clone := shallowClone(root, nil)

	type pair struct{ src, dst *Node }
	stack := []pair{{root, clone}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if collapsed[p.src.ID] {
			continue // children hidden; dst keeps its empty slice
		}
		for _, c := range p.src.Children {
			cc := shallowClone(c, p.dst)
			p.dst.Children = append(p.dst.Children, cc)
			stack = append(stack, pair{c, cc})
		}
	}

	return clone
}

// shallowClone copies the structural and metric fields of src into a fresh
// node parented under dst, without children and without geometry.
func shallowClone(src *Node, parent *Node) *Node {
	return &Node{
		Item:        src.Item,
		ID:          src.ID,
		Depth:       src.Depth,
		Parent:      parent,
		DescCount:   src.DescCount,
		SubtreeSize: src.SubtreeSize,
	}
}

// CountVisible returns the number of nodes in a visible tree.
func CountVisible(root *Node) int {
	n := 0
	root.Walk(func(*Node) { n++ })
	return n
}
