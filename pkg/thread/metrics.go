package thread

// ComputeMetrics fills DescCount and SubtreeSize for every node under root
// in a single post-order pass, O(n) in tree size. It must run once per
// fresh build, before any layout or focus computation reads the metrics.
// The metrics describe the full tree; collapse/expand never changes them.
func ComputeMetrics(root *Node) {
	if root == nil {
		return
	}

	// Explicit two-phase stack: first pass collects nodes in pre-order,
	// second pass walks them backwards, which is a valid post-order for
	// the purpose of summing child counts into parents.
	order := make([]*Node, 0, 64)
	stack := []*Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cur)
		for _, c := range cur.Children {
			stack = append(stack, c)
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		n.DescCount = 0
		for _, c := range n.Children {
			n.DescCount += c.DescCount + 1
		}
		n.SubtreeSize = n.DescCount + 1
	}
}
