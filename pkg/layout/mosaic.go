package layout

import "github.com/a-Gb/hankerlytics/pkg/thread"

// Size tiers for mosaic cards, by position in the feed sequence.
const (
	tierLarge = iota
	tierMedium
	tierSmall
)

// mosaicLayout is the frontpage overview: not tree-positional. The visible
// tree's root stands for the feed listing and each direct child is one
// story card. Cards flow into a multi-column grid with greedy
// shortest-column placement, and each card embeds a scaled-down icicle of
// the story's own reply subtree as a preview (loaded lazily by the
// fetch side; an unloaded story simply renders an empty preview).
type mosaicLayout struct{}

func (mosaicLayout) Kind() Kind        { return KindMosaic }
func (mosaicLayout) SupportsLOD() bool { return false }
func (mosaicLayout) IsGrid() bool      { return true }

func (l mosaicLayout) Compute(visible *thread.Node, ctx Context) *Result {
	p := ctx.Params
	cols := p.Columns
	if cols < 1 {
		cols = 1
	}
	gap := p.CardGap
	colW := (ctx.Width - gap*float64(cols-1)) / float64(cols)

	res := &Result{Kind: KindMosaic}
	heights := make([]float64, cols)

	for i, story := range visible.Children {
		tier := tierFor(i, cols)
		span := 1
		if tier == tierLarge && cols > 1 {
			span = 2
		}
		cardH := p.CardHeights[tier]
		cardW := colW*float64(span) + gap*float64(span-1)

		col := shortestSpan(heights, span)
		x := float64(col) * (colW + gap)
		y := spanTop(heights, col, span)

		// Lay out the embedded reply preview first: the icicle pass
		// positions the story node itself, which the card rect below
		// overwrites.
		if len(story.Children) > 0 {
			inner := Rect{
				X: x + p.PreviewInset,
				Y: y + cardH/3,
				W: cardW - 2*p.PreviewInset,
				H: cardH - cardH/3 - p.PreviewInset,
			}
			sub := icicleInto(story, inner.X, inner.Y, inner.W, previewBand(story, inner.H, p))
			// Skip the story node itself (sub.Nodes[0]); its geometry is
			// replaced by the card rect.
			res.Nodes = append(res.Nodes, sub.Nodes[1:]...)
			res.Edges = append(res.Edges, sub.Edges...)
			if sub.MaxDepth > res.MaxDepth {
				res.MaxDepth = sub.MaxDepth
			}
		}

		story.X = x
		story.Y = y
		story.W = cardW
		story.H = cardH
		setCentroid(story)
		res.Nodes = append(res.Nodes, story)
		res.Bounds = res.Bounds.union(Rect{X: x, Y: y, W: cardW, H: cardH})

		bump := y + cardH + gap
		for c := col; c < col+span; c++ {
			heights[c] = bump
		}
	}

	// The feed root spans the whole grid so hit-testing and bounds stay
	// uniform with the tree layouts.
	visible.X = 0
	visible.Y = 0
	visible.W = ctx.Width
	visible.H = res.Bounds.Y + res.Bounds.H
	setCentroid(visible)
	res.Nodes = append(res.Nodes, visible)
	res.Bounds = res.Bounds.union(Rect{X: visible.X, Y: visible.Y, W: visible.W, H: visible.H})
	if res.MaxDepth < 1 && len(visible.Children) > 0 {
		res.MaxDepth = 1
	}
	return res
}

// tierFor picks a card size tier from feed position: the lead story is
// large, the rest of the first screenful is medium, everything below the
// fold is small.
func tierFor(i, cols int) int {
	switch {
	case i == 0:
		return tierLarge
	case i <= cols*2:
		return tierMedium
	default:
		return tierSmall
	}
}

// shortestSpan returns the start column of the span whose current maximum
// height is smallest; ties go to the leftmost span.
func shortestSpan(heights []float64, span int) int {
	best := 0
	bestH := spanTop(heights, 0, span)
	for c := 1; c+span <= len(heights); c++ {
		if h := spanTop(heights, c, span); h < bestH {
			best, bestH = c, h
		}
	}
	return best
}

// spanTop returns the maximum column height across heights[col:col+span].
func spanTop(heights []float64, col, span int) float64 {
	top := heights[col]
	for c := col + 1; c < col+span && c < len(heights); c++ {
		if heights[c] > top {
			top = heights[c]
		}
	}
	return top
}

// previewBand scales the preview's band height so the whole reply subtree
// fits the card's inner height, clamped so very deep threads stay legible
// as thin strata rather than vanishing.
func previewBand(story *thread.Node, innerH float64, p Params) float64 {
	depth := 0
	story.Walk(func(n *thread.Node) {
		if d := n.Depth - story.Depth; d > depth {
			depth = d
		}
	})
	band := innerH / float64(depth+1)
	if band > p.BandHeight {
		band = p.BandHeight
	}
	if band < 3 {
		band = 3
	}
	return band
}
