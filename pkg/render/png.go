package render

import (
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/a-Gb/hankerlytics/pkg/layout"
)

// PNGRenderer rasterizes a Layout Result to a PNG file.
type PNGRenderer struct {
	path    string
	padding float64
}

// NewPNGRenderer creates a PNG renderer writing to path on Draw.
func NewPNGRenderer(path string) *PNGRenderer {
	return &PNGRenderer{path: path, padding: 16}
}

// Draw rasterizes the layout and saves it.
func (r *PNGRenderer) Draw(res *layout.Result, rc Context) error {
	width := int(math.Ceil(res.Bounds.W + 2*r.padding))
	height := int(math.Ceil(res.Bounds.H + 2*r.padding))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	ox := r.padding - res.Bounds.X
	oy := r.padding - res.Bounds.Y

	bands := res.Kind == layout.KindIcicle || res.Kind == layout.KindMosaic

	// Edges under nodes for the link-drawing layouts.
	if !bands {
		for _, e := range res.Edges {
			x0, y0 := e.From.CX+ox, e.From.CY+oy
			x1, y1 := e.To.CX+ox, e.To.CY+oy
			if res.Kind == layout.KindSankey {
				x0 = e.From.X + e.From.W + ox
				x1 = e.To.X + ox
			}
			mid := (x0 + x1) / 2
			dc.MoveTo(x0, y0)
			dc.CubicTo(mid, y0, mid, y1, x1, y1)
			dc.SetHexColor(colorEdge)
			width := 1.0
			if e.Thickness > 0 {
				width = e.Thickness
			}
			dc.SetLineWidth(width)
			dc.Stroke()
		}
	}

	for _, n := range res.Nodes {
		dc.SetHexColor(nodeFill(n, rc))
		if nodeOpacity(n, rc) < 1 {
			dc.SetRGBA(0.4, 0.42, 0.55, dimOpacity)
		}
		if bands || res.Kind == layout.KindSankey {
			dc.DrawRectangle(n.X+ox, n.Y+oy, n.W, n.H)
		} else {
			radius := n.W / 2
			if radius < 2 {
				radius = 2
			}
			dc.DrawCircle(n.CX+ox, n.CY+oy, radius)
		}
		dc.Fill()
	}

	return dc.SavePNG(r.path)
}
