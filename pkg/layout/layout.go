// Package layout computes node geometry and edge routes for a visible
// comment tree. Five interchangeable algorithms share one contract: each
// takes the visible tree plus a view context and produces positioned nodes,
// edges, and a bounding box. Compute is a pure function of its inputs;
// node identity is preserved 1:1 with the visible tree by id, and the
// geometry fields are written onto the visible-tree nodes themselves.
package layout

import (
	"math"

	"github.com/a-Gb/hankerlytics/pkg/thread"
)

// Kind tags one of the closed set of layout variants. Dispatch is by
// explicit tag, not structural typing.
type Kind string

const (
	KindIcicle Kind = "icicle"
	KindSankey Kind = "sankey"
	KindLanes  Kind = "lanes"
	KindTidy   Kind = "tidy"
	KindMosaic Kind = "mosaic"
)

// IsValid returns true if the kind names a known algorithm.
func (k Kind) IsValid() bool {
	_, ok := ForKind(k)
	return ok
}

// Rect is an axis-aligned bounding box in layout space.
type Rect struct {
	X, Y, W, H float64
}

// union grows the rect to include r.
func (b Rect) union(r Rect) Rect {
	if b.W == 0 && b.H == 0 {
		return r
	}
	x0 := math.Min(b.X, r.X)
	y0 := math.Min(b.Y, r.Y)
	x1 := math.Max(b.X+b.W, r.X+r.W)
	y1 := math.Max(b.Y+b.H, r.Y+r.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Edge routes one parent-child connection. Depth is inherited from the
// child endpoint so edge styling can follow depth banding. Thickness is
// only meaningful for the sankey layout; other layouts leave it zero.
type Edge struct {
	From, To  *thread.Node
	Depth     int
	Thickness float64
}

// Result is the output of one layout pass for one render. It is fully
// replaced, never patched, on each pass.
type Result struct {
	Kind     Kind
	Nodes    []*thread.Node
	Edges    []Edge
	Bounds   Rect
	MaxDepth int
}

// Context carries the view information a layout may read. Scale is
// available for level-of-detail decisions; Compute must not mutate any
// application state.
type Context struct {
	Width, Height float64
	Scale         float64
	Params        Params
}

// Params holds the spacing constants shared across the algorithms.
type Params struct {
	// Icicle.
	BandHeight float64

	// Sankey, lanes and tidy: horizontal spacing per depth level.
	ColumnSpacing float64

	// Lanes and tidy.
	RowSpacing float64
	LaneGap    float64
	NodeWidth  float64
	NodeHeight float64

	// Sankey.
	PxPerWeight   float64
	MinNodeHeight float64
	SiblingGap    float64
	SankeyNodeW   float64
	EdgeMinThick  float64
	EdgeMaxThick  float64

	// Mosaic.
	Columns      int
	CardGap      float64
	PreviewInset float64
	CardHeights  [3]float64 // large, medium, small tiers
}

// DefaultParams returns the spacing constants used when the config does
// not override them.
func DefaultParams() Params {
	return Params{
		BandHeight:    28,
		ColumnSpacing: 120,
		RowSpacing:    22,
		LaneGap:       36,
		NodeWidth:     14,
		NodeHeight:    14,
		PxPerWeight:   6,
		MinNodeHeight: 4,
		SiblingGap:    3,
		SankeyNodeW:   18,
		EdgeMinThick:  1,
		EdgeMaxThick:  12,
		Columns:       3,
		CardGap:       14,
		PreviewInset:  10,
		CardHeights:   [3]float64{260, 200, 140},
	}
}

// Algorithm is the shared contract every layout variant implements.
type Algorithm interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Compute lays out the visible tree. The caller guarantees a non-nil
	// root; an empty thread short-circuits the render path one level up.
	Compute(visible *thread.Node, ctx Context) *Result
	// SupportsLOD reports whether renderers should apply zoom-based
	// level-of-detail to this layout's output.
	SupportsLOD() bool
	// IsGrid reports a non-tree grid layout (card positions carry no
	// parent/child geometry relationship).
	IsGrid() bool
}

var algorithms = map[Kind]Algorithm{
	KindIcicle: icicleLayout{},
	KindSankey: sankeyLayout{},
	KindLanes:  lanesLayout{},
	KindTidy:   tidyLayout{},
	KindMosaic: mosaicLayout{},
}

// ForKind returns the algorithm for a kind tag.
func ForKind(k Kind) (Algorithm, bool) {
	a, ok := algorithms[k]
	return a, ok
}

// Kinds returns all known kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindIcicle, KindSankey, KindLanes, KindTidy, KindMosaic}
}

// preOrder returns the visible tree in pre-order using an explicit stack.
// Children appear after their parent and in source order.
func preOrder(root *thread.Node) []*thread.Node {
	if root == nil {
		return nil
	}
	order := make([]*thread.Node, 0, 64)
	stack := []*thread.Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return order
}

// visibleWeights computes the local subtree size (self + all visible
// descendants) for every node. Recomputed per layout call because
// collapsing changes the weights; the full-tree metrics cannot be used.
func visibleWeights(order []*thread.Node) map[int64]float64 {
	w := make(map[int64]float64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		sum := 1.0
		for _, c := range n.Children {
			sum += w[c.ID]
		}
		w[n.ID] = sum
	}
	return w
}

// collectEdges emits one edge per visible parent-child pair, in node order.
func collectEdges(order []*thread.Node) []Edge {
	edges := make([]Edge, 0, len(order))
	for _, n := range order {
		for _, c := range n.Children {
			edges = append(edges, Edge{From: n, To: c, Depth: c.Depth})
		}
	}
	return edges
}

// maxDepthOf returns the deepest depth among the nodes, or 0.
func maxDepthOf(order []*thread.Node) int {
	max := 0
	for _, n := range order {
		if n.Depth > max {
			max = n.Depth
		}
	}
	return max
}

// setCentroid fills CX, CY from the node's rect.
func setCentroid(n *thread.Node) {
	n.CX = n.X + n.W/2
	n.CY = n.Y + n.H/2
}
