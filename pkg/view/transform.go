// Package view holds presentation-side state that is independent of which
// layout algorithm is active: the pan/zoom transform, zoom-driven
// level-of-detail bucketing, and coalescing of re-layout requests.
package view

// Transform is a pan/zoom transform from layout space to screen space.
type Transform struct {
	TX, TY float64 // translation in screen pixels
	Scale  float64
}

// MinScale and MaxScale bound the zoom range.
const (
	MinScale = 0.05
	MaxScale = 8.0
)

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Scale: 1}
}

// Apply maps a layout-space point to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.Scale + t.TX, y*t.Scale + t.TY
}

// Invert maps a screen-space point back to layout space. Used to translate
// pointer coordinates into node hits.
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.TX) / t.Scale, (sy - t.TY) / t.Scale
}

// Pan shifts the view by a screen-space delta.
func (t Transform) Pan(dx, dy float64) Transform {
	t.TX += dx
	t.TY += dy
	return t
}

// ZoomAt scales the view by factor keeping the screen point (px, py)
// fixed. The resulting scale is clamped to [MinScale, MaxScale].
func (t Transform) ZoomAt(factor, px, py float64) Transform {
	next := t.Scale * factor
	if next < MinScale {
		next = MinScale
	}
	if next > MaxScale {
		next = MaxScale
	}
	factor = next / t.Scale

	// Keep the anchor point stationary: its layout-space position must map
	// to the same screen position before and after.
	t.TX = px - (px-t.TX)*factor
	t.TY = py - (py-t.TY)*factor
	t.Scale = next
	return t
}

// DetailLevel buckets zoom scale into rendering tiers so layouts and
// renderers can cheapen far-out views.
type DetailLevel int

const (
	// DetailDot renders nodes as bare marks, no text.
	DetailDot DetailLevel = iota
	// DetailCompact renders abbreviated labels.
	DetailCompact
	// DetailFull renders complete labels and edge decoration.
	DetailFull
)

// String returns a short name for the detail level.
func (d DetailLevel) String() string {
	switch d {
	case DetailDot:
		return "dot"
	case DetailCompact:
		return "compact"
	case DetailFull:
		return "full"
	}
	return "unknown"
}

// DetailForScale buckets a zoom scale into a DetailLevel.
func DetailForScale(scale float64) DetailLevel {
	switch {
	case scale < 0.35:
		return DetailDot
	case scale < 0.9:
		return DetailCompact
	default:
		return DetailFull
	}
}
