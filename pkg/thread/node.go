// Package thread builds and maintains the in-memory comment tree for one
// loaded discussion: the ownership tree derived from flat item records, the
// id index, derived metrics, collapse/expand visibility, and focus state.
package thread

import (
	"log"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

// Node is a derived tree entity wrapping one Item. A node is exclusively
// owned by its parent; the root is owned by the Session. Children order
// matches the source item's Kids order.
//
// Layout algorithms write the geometry fields (X, Y, W, H, CX, CY) on the
// nodes of a visible tree; the full tree's geometry is never touched.
type Node struct {
	Item     *model.Item
	ID       int64
	Depth    int // root = 0, child = parent.Depth + 1
	Parent   *Node
	Children []*Node

	// Derived metrics over the full tree, set by ComputeMetrics.
	// Collapse/expand does not change these.
	DescCount   int // count of all strict descendants
	SubtreeSize int // DescCount + 1

	// Geometry, set by a layout pass on visible-tree nodes.
	X, Y, W, H float64
	CX, CY     float64
}

// ParentID returns the parent's id, or 0 for the root.
func (n *Node) ParentID() int64 {
	if n.Parent == nil {
		return 0
	}
	return n.Parent.ID
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits the node and every descendant in pre-order. The traversal
// uses an explicit stack; pathological comment chains can exceed safe
// recursion depth.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		// Push children in reverse so they pop in source order.
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Index maps every id in the full (unfiltered) tree to its node.
// Built once per load, never rebuilt on collapse/expand.
type Index map[int64]*Node

// Build converts a flat id→item mapping into an ownership tree rooted at
// rootID and returns the root plus the id index. Returns (nil, nil) when
// rootID has no item; the caller must treat that as "thread not found" and
// halt the load pipeline.
//
// An id in Kids with no corresponding item is skipped, not an error. The
// upstream source is assumed acyclic, but a visited-set guard drops
// back-edges anyway so a malformed feed cannot hang the build.
func Build(rootID int64, items map[int64]*model.Item) (*Node, Index) {
	rootItem, ok := items[rootID]
	if !ok {
		return nil, nil
	}

	index := make(Index, len(items))
	visited := make(map[int64]bool, len(items))

	root := &Node{Item: rootItem, ID: rootID}
	visited[rootID] = true
	index[rootID] = root

	// Iterative DFS keeps source child order and survives deep chains.
	stack := []*Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, kid := range cur.Item.Kids {
			child, ok := items[kid]
			if !ok {
				continue // branch not fetched, skip silently
			}
			if visited[kid] {
				log.Printf("warning: item %d referenced twice, dropping back-edge from %d", kid, cur.ID)
				continue
			}
			visited[kid] = true

			node := &Node{
				Item:   child,
				ID:     kid,
				Depth:  cur.Depth + 1,
				Parent: cur,
			}
			cur.Children = append(cur.Children, node)
			index[kid] = node
		}
		// Push children in reverse so the leftmost subtree is expanded first.
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}

	return root, index
}
