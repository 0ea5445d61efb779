// Package render draws Layout Results. The core treats rendering as an
// external collaborator behind the Renderer contract; this package ships
// an SVG and a PNG implementation plus a local preview server for the
// exported files.
package render

import (
	"github.com/a-Gb/hankerlytics/pkg/layout"
	"github.com/a-Gb/hankerlytics/pkg/model"
	"github.com/a-Gb/hankerlytics/pkg/thread"
	"github.com/a-Gb/hankerlytics/pkg/view"
)

// Context carries the presentation state one render pass needs alongside
// the geometry: selection, collapse, focus, lane colors, the optional
// sentiment overlay, and the zoom detail level. The core never reads
// anything back from a renderer.
type Context struct {
	Selection int64
	Collapsed map[int64]bool
	Focus     thread.Focus
	Index     thread.Index
	Colors    thread.LaneColors
	Sentiment model.SentimentOverlay
	Detail    view.DetailLevel
}

// Renderer consumes one Layout Result and produces visual output.
type Renderer interface {
	Draw(res *layout.Result, rc Context) error
}

// Palette constants shared by both renderers.
const (
	colorBackground = "#282a36"
	colorNeutral    = "#44475a"
	colorEdge       = "#6272a4"
	colorText       = "#f8f8f2"
	colorSelected   = "#ffb86c"

	dimOpacity = 0.25
)

// sentimentColor maps a classification label to its overlay color.
func sentimentColor(label model.SentimentLabel) string {
	switch label {
	case model.SentimentPositive:
		return "#50fa7b"
	case model.SentimentNegative:
		return "#ff5555"
	case model.SentimentMixed:
		return "#f1fa8c"
	case model.SentimentNeutral:
		return "#6272a4"
	}
	return colorNeutral
}

// nodeFill resolves a node's fill color: lane color inherited from its
// top-level branch ancestor, the selection highlight when selected.
func nodeFill(n *thread.Node, rc Context) string {
	if rc.Focus.Active && n.ID == rc.Focus.Selected {
		return colorSelected
	}
	return rc.Colors.ColorFor(rc.Index, n.ID, colorNeutral)
}

// nodeOpacity dims everything outside the focus relationship.
func nodeOpacity(n *thread.Node, rc Context) float64 {
	if rc.Focus.InFocus(n.ID) {
		return 1.0
	}
	return dimOpacity
}

// nodeLabel picks the text shown at full detail.
func nodeLabel(n *thread.Node) string {
	if n.Item == nil {
		return ""
	}
	if n.Item.Title != "" {
		return n.Item.Title
	}
	return n.Item.By
}
