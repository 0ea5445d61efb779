package layout

import "github.com/a-Gb/hankerlytics/pkg/thread"

// sankeyLayout renders the thread as weighted flow columns: one column per
// depth level at fixed horizontal spacing. A node's height is its visible
// subtree weight scaled by PxPerWeight with a minimum floor, and siblings
// stack inside the parent's vertical band with fixed gaps.
//
// Hard invariant: the total occupied height within a parent's band never
// exceeds the parent's height. When preferred child heights plus gaps
// overflow, heights are scaled down uniformly; the floor yields before the
// invariant does.
type sankeyLayout struct{}

func (sankeyLayout) Kind() Kind        { return KindSankey }
func (sankeyLayout) SupportsLOD() bool { return true }
func (sankeyLayout) IsGrid() bool      { return false }

func (l sankeyLayout) Compute(visible *thread.Node, ctx Context) *Result {
	p := ctx.Params
	order := preOrder(visible)
	weights := visibleWeights(order)

	rootH := weights[visible.ID] * p.PxPerWeight
	if rootH > ctx.Height {
		rootH = ctx.Height
	}
	if rootH < p.MinNodeHeight {
		rootH = p.MinNodeHeight
	}
	visible.X = 0
	visible.Y = (ctx.Height - rootH) / 2
	if visible.Y < 0 {
		visible.Y = 0
	}
	visible.W = p.SankeyNodeW
	visible.H = rootH
	setCentroid(visible)

	for _, n := range order {
		if len(n.Children) > 0 {
			placeSankeyChildren(n, weights, p)
		}
	}

	edges := make([]Edge, 0, len(order))
	bounds := Rect{X: visible.X, Y: visible.Y, W: visible.W, H: visible.H}
	for _, n := range order {
		bounds = bounds.union(Rect{X: n.X, Y: n.Y, W: n.W, H: n.H})
		for _, c := range n.Children {
			thick := c.H
			if thick < p.EdgeMinThick {
				thick = p.EdgeMinThick
			}
			if thick > p.EdgeMaxThick {
				thick = p.EdgeMaxThick
			}
			edges = append(edges, Edge{From: n, To: c, Depth: c.Depth, Thickness: thick})
		}
	}

	return &Result{
		Kind:     KindSankey,
		Nodes:    order,
		Edges:    edges,
		Bounds:   bounds,
		MaxDepth: maxDepthOf(order),
	}
}

// placeSankeyChildren assigns geometry to the children of parent. Children
// sit one column to the right, vertically centered as a group within the
// parent's band.
func placeSankeyChildren(parent *thread.Node, weights map[int64]float64, p Params) {
	kids := parent.Children
	n := float64(len(kids))

	gap := p.SiblingGap
	gaps := gap * (n - 1)
	avail := parent.H
	if gaps >= avail {
		// Parent band too short for gaps at all; drop them.
		gap = 0
		gaps = 0
	}

	prefs := make([]float64, len(kids))
	sumPref := 0.0
	for i, c := range kids {
		h := weights[c.ID] * p.PxPerWeight
		if h < p.MinNodeHeight {
			h = p.MinNodeHeight
		}
		prefs[i] = h
		sumPref += h
	}

	if sumPref+gaps > avail {
		// Uniform scale-down, holding the floor where possible.
		scale := (avail - gaps) / sumPref
		sumPref = 0
		for i := range prefs {
			h := prefs[i] * scale
			if h < p.MinNodeHeight {
				h = p.MinNodeHeight
			}
			prefs[i] = h
			sumPref += h
		}
		// Floors may still overflow a very short band; at that point the
		// fit invariant wins and every child gets an equal share.
		if sumPref+gaps > avail {
			share := (avail - gaps) / n
			sumPref = 0
			for i := range prefs {
				prefs[i] = share
				sumPref += share
			}
		}
	}

	x := parent.X + p.ColumnSpacing
	y := parent.Y + (avail-(sumPref+gaps))/2
	for i, c := range kids {
		c.X = x
		c.Y = y
		c.W = p.SankeyNodeW
		c.H = prefs[i]
		setCentroid(c)
		y += prefs[i] + gap
	}
}
