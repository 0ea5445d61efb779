package layout

import "github.com/a-Gb/hankerlytics/pkg/thread"

// assignTidyY performs the classic tidy-tree vertical assignment over the
// subtree rooted at root: leaves are stacked at RowSpacing starting from
// *cursor, and every internal node is centered on the vertical midpoint of
// its children. X is strictly depth × ColumnSpacing for every layout in
// this family.
//
// Two linear passes over the pre-order sequence replace recursion: the
// forward pass stacks leaves, the backward pass centers internal nodes
// (their children always appear later in pre-order, so they are already
// placed when walking backwards).
func assignTidyY(order []*thread.Node, p Params, cursor *float64) {
	for _, n := range order {
		n.X = float64(n.Depth) * p.ColumnSpacing
		n.W = p.NodeWidth
		n.H = p.NodeHeight
		if len(n.Children) == 0 {
			n.Y = *cursor
			*cursor += p.RowSpacing
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if len(n.Children) > 0 {
			first := n.Children[0]
			last := n.Children[len(n.Children)-1]
			n.Y = (first.Y + last.Y) / 2
		}
		setCentroid(n)
	}
}

// lanesLayout renders each of the root's direct children as an independent
// swim lane: tidy-tree y-assignment restricted to one lane, lanes stacked
// vertically with a fixed gap, and the root re-centered at the vertical
// midpoint of all lane centers.
type lanesLayout struct{}

func (lanesLayout) Kind() Kind        { return KindLanes }
func (lanesLayout) SupportsLOD() bool { return true }
func (lanesLayout) IsGrid() bool      { return false }

func (l lanesLayout) Compute(visible *thread.Node, ctx Context) *Result {
	p := ctx.Params
	order := preOrder(visible)

	top := 0.0
	var laneCenters []float64
	for _, lane := range visible.Children {
		laneOrder := preOrder(lane)
		cursor := top
		assignTidyY(laneOrder, p, &cursor)
		laneCenters = append(laneCenters, lane.Y)
		// cursor now sits one RowSpacing past the lane's last leaf.
		top = cursor + p.LaneGap
	}

	visible.X = 0
	visible.W = p.NodeWidth
	visible.H = p.NodeHeight
	if len(laneCenters) > 0 {
		visible.Y = (laneCenters[0] + laneCenters[len(laneCenters)-1]) / 2
	} else {
		visible.Y = 0
	}
	setCentroid(visible)

	return finishNodeLayout(KindLanes, order)
}

// tidyLayout is the classic tidy tree: the same y-assignment rule as swim
// lanes applied globally to the whole tree, with no lane separation beyond
// natural leaf spacing.
type tidyLayout struct{}

func (tidyLayout) Kind() Kind        { return KindTidy }
func (tidyLayout) SupportsLOD() bool { return true }
func (tidyLayout) IsGrid() bool      { return false }

func (l tidyLayout) Compute(visible *thread.Node, ctx Context) *Result {
	p := ctx.Params
	order := preOrder(visible)
	cursor := 0.0
	assignTidyY(order, p, &cursor)
	return finishNodeLayout(KindTidy, order)
}

// finishNodeLayout assembles the Result for the node-and-link layout
// family from already-positioned nodes.
func finishNodeLayout(kind Kind, order []*thread.Node) *Result {
	bounds := Rect{}
	for _, n := range order {
		bounds = bounds.union(Rect{X: n.X, Y: n.Y, W: n.W, H: n.H})
	}
	return &Result{
		Kind:     kind,
		Nodes:    order,
		Edges:    collectEdges(order),
		Bounds:   bounds,
		MaxDepth: maxDepthOf(order),
	}
}
