package layout

import "github.com/a-Gb/hankerlytics/pkg/thread"

// icicleLayout renders the thread as space-filling nested bands: the root
// spans the full width at depth band 0, each depth consumes one fixed-height
// band, and a parent's width is partitioned among its children
// proportionally to each child's visible subtree weight.
//
// Deterministic and stable: identical visible trees produce identical
// geometry. A leaf weighs 1; a node with no visible children simply keeps
// its inherited width.
type icicleLayout struct{}

func (icicleLayout) Kind() Kind       { return KindIcicle }
func (icicleLayout) SupportsLOD() bool { return true }
func (icicleLayout) IsGrid() bool      { return false }

func (l icicleLayout) Compute(visible *thread.Node, ctx Context) *Result {
	return icicleInto(visible, 0, 0, ctx.Width, ctx.Params.BandHeight)
}

// icicleInto lays out the subtree rooted at root into bands starting at
// (x, y) with the given total width and per-depth band height. Factored
// out so the mosaic layout can embed scaled-down previews.
func icicleInto(root *thread.Node, x, y, width, band float64) *Result {
	order := preOrder(root)
	weights := visibleWeights(order)
	rootDepth := root.Depth

	root.X = x
	root.Y = y
	root.W = width
	root.H = band
	setCentroid(root)

	for _, n := range order {
		if len(n.Children) == 0 {
			continue
		}
		childSum := 0.0
		for _, c := range n.Children {
			childSum += weights[c.ID]
		}
		cursor := n.X
		childY := y + float64(n.Depth-rootDepth+1)*band
		for _, c := range n.Children {
			w := n.W * weights[c.ID] / childSum
			c.X = cursor
			c.Y = childY
			c.W = w
			c.H = band
			setCentroid(c)
			cursor += w
		}
	}

	maxDepth := maxDepthOf(order)
	return &Result{
		Kind:     KindIcicle,
		Nodes:    order,
		Edges:    collectEdges(order),
		MaxDepth: maxDepth,
		Bounds: Rect{
			X: x, Y: y,
			W: width,
			H: float64(maxDepth-rootDepth+1) * band,
		},
	}
}
