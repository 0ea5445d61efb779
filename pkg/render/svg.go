package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/a-Gb/hankerlytics/pkg/layout"
	"github.com/a-Gb/hankerlytics/pkg/thread"
	"github.com/a-Gb/hankerlytics/pkg/view"
)

// SVGRenderer writes a Layout Result as a standalone SVG document.
type SVGRenderer struct {
	w       io.Writer
	padding int
}

// NewSVGRenderer creates an SVG renderer writing to w.
func NewSVGRenderer(w io.Writer) *SVGRenderer {
	return &SVGRenderer{w: w, padding: 16}
}

// Draw renders the layout. Band layouts (icicle, mosaic) draw rects;
// the node-and-link family draws dots and routed edges; sankey draws
// weighted ribbons.
func (r *SVGRenderer) Draw(res *layout.Result, rc Context) error {
	canvas := svg.New(r.w)
	width := int(math.Ceil(res.Bounds.W)) + 2*r.padding
	height := int(math.Ceil(res.Bounds.H)) + 2*r.padding
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+colorBackground)

	ox := float64(r.padding) - res.Bounds.X
	oy := float64(r.padding) - res.Bounds.Y

	switch res.Kind {
	case layout.KindIcicle, layout.KindMosaic:
		r.drawBands(canvas, res, rc, ox, oy)
	case layout.KindSankey:
		r.drawSankey(canvas, res, rc, ox, oy)
	default:
		r.drawNodeLink(canvas, res, rc, ox, oy)
	}

	canvas.End()
	return nil
}

func (r *SVGRenderer) drawBands(canvas *svg.SVG, res *layout.Result, rc Context, ox, oy float64) {
	for _, n := range res.Nodes {
		style := fmt.Sprintf("fill:%s;fill-opacity:%.2f;stroke:%s;stroke-width:0.5",
			nodeFill(n, rc), nodeOpacity(n, rc), colorBackground)
		canvas.Rect(round(n.X+ox), round(n.Y+oy), round(n.W), round(n.H), style)

		if rc.Collapsed[n.ID] {
			// Collapsed marker: a bright strip along the band's bottom edge.
			canvas.Rect(round(n.X+ox), round(n.Y+oy+n.H-2), round(n.W), 2,
				"fill:"+colorSelected)
		}
		r.drawSentimentDot(canvas, n, rc, ox, oy)
		if rc.Detail == view.DetailFull && n.W > 60 {
			canvas.Text(round(n.X+ox)+4, round(n.Y+oy+n.H/2)+4, nodeLabel(n),
				"fill:"+colorText+";font-size:10px;font-family:monospace")
		}
	}
}

func (r *SVGRenderer) drawSankey(canvas *svg.SVG, res *layout.Result, rc Context, ox, oy float64) {
	// Ribbons first so nodes sit on top.
	for _, e := range res.Edges {
		x0 := e.From.X + e.From.W + ox
		y0 := e.From.CY + oy
		x1 := e.To.X + ox
		y1 := e.To.CY + oy
		mid := (x0 + x1) / 2
		opacity := nodeOpacity(e.To, rc) * 0.6
		d := fmt.Sprintf("M %.1f %.1f C %.1f %.1f %.1f %.1f %.1f %.1f",
			x0, y0, mid, y0, mid, y1, x1, y1)
		canvas.Path(d, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f;stroke-opacity:%.2f",
			rc.Colors.ColorFor(rc.Index, e.To.ID, colorEdge), e.Thickness, opacity))
	}
	for _, n := range res.Nodes {
		style := fmt.Sprintf("fill:%s;fill-opacity:%.2f", nodeFill(n, rc), nodeOpacity(n, rc))
		canvas.Rect(round(n.X+ox), round(n.Y+oy), round(n.W), round(n.H), style)
		r.drawSentimentDot(canvas, n, rc, ox, oy)
	}
}

func (r *SVGRenderer) drawNodeLink(canvas *svg.SVG, res *layout.Result, rc Context, ox, oy float64) {
	for _, e := range res.Edges {
		x0 := e.From.CX + ox
		y0 := e.From.CY + oy
		x1 := e.To.CX + ox
		y1 := e.To.CY + oy
		mid := (x0 + x1) / 2
		d := fmt.Sprintf("M %.1f %.1f C %.1f %.1f %.1f %.1f %.1f %.1f",
			x0, y0, mid, y0, mid, y1, x1, y1)
		canvas.Path(d, fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.2f;stroke-width:1",
			colorEdge, nodeOpacity(e.To, rc)))
	}
	for _, n := range res.Nodes {
		radius := round(n.W / 2)
		if radius < 2 {
			radius = 2
		}
		style := fmt.Sprintf("fill:%s;fill-opacity:%.2f", nodeFill(n, rc), nodeOpacity(n, rc))
		canvas.Circle(round(n.CX+ox), round(n.CY+oy), radius, style)
		if rc.Collapsed[n.ID] {
			canvas.Circle(round(n.CX+ox), round(n.CY+oy), radius+3,
				"fill:none;stroke:"+colorSelected+";stroke-width:1.5")
		}
		if rc.Detail == view.DetailFull {
			canvas.Text(round(n.CX+ox)+radius+3, round(n.CY+oy)+3, nodeLabel(n),
				"fill:"+colorText+";font-size:9px;font-family:monospace")
		}
	}
}

func (r *SVGRenderer) drawSentimentDot(canvas *svg.SVG, n *thread.Node, rc Context, ox, oy float64) {
	s, ok := rc.Sentiment[n.ID]
	if !ok || n.W < 8 || n.H < 8 {
		return
	}
	canvas.Circle(round(n.X+ox+n.W)-4, round(n.Y+oy)+4, 2, "fill:"+sentimentColor(s.Label))
}

func round(v float64) int {
	return int(math.Round(v))
}
