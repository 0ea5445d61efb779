package render

import (
	"strings"
	"testing"

	"github.com/a-Gb/hankerlytics/pkg/layout"
	"github.com/a-Gb/hankerlytics/pkg/model"
	"github.com/a-Gb/hankerlytics/pkg/thread"
	"github.com/a-Gb/hankerlytics/pkg/view"
)

func renderFixture(t *testing.T) (*thread.Session, *thread.Node) {
	t.Helper()
	items := map[int64]*model.Item{
		1: {ID: 1, Type: model.TypeStory, Title: "a story", By: "op", Kids: []int64{2, 3}},
		2: {ID: 2, Type: model.TypeComment, By: "alice", Kids: []int64{4}},
		3: {ID: 3, Type: model.TypeComment, By: "bob"},
		4: {ID: 4, Type: model.TypeComment, By: "carol"},
	}
	sess := thread.NewSession(nil)
	if err := sess.Reset(1, items); err != nil {
		t.Fatal(err)
	}
	return sess, sess.VisibleTree()
}

func renderContext(sess *thread.Session) Context {
	return Context{
		Selection: sess.Focus.Selected,
		Collapsed: sess.Collapsed,
		Focus:     sess.Focus,
		Index:     sess.Index,
		Colors:    sess.Colors,
		Sentiment: sess.Sentiment,
		Detail:    view.DetailFull,
	}
}

func drawSVG(t *testing.T, kind layout.Kind, sess *thread.Session, visible *thread.Node) string {
	t.Helper()
	algo, ok := layout.ForKind(kind)
	if !ok {
		t.Fatalf("unknown kind %s", kind)
	}
	res := algo.Compute(visible, layout.Context{
		Width: 800, Height: 600, Scale: 1, Params: layout.DefaultParams(),
	})
	var sb strings.Builder
	if err := NewSVGRenderer(&sb).Draw(res, renderContext(sess)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return sb.String()
}

func TestSVGIcicle(t *testing.T) {
	sess, visible := renderFixture(t)
	out := drawSVG(t, layout.KindIcicle, sess, visible)

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not a complete SVG document")
	}
	// One band rect per node plus the background.
	if got := strings.Count(out, "<rect"); got != 5 {
		t.Errorf("rect count = %d, want 5", got)
	}
	// Full detail labels the wide root band.
	if !strings.Contains(out, "a story") {
		t.Error("root title missing at full detail")
	}
	if !strings.Contains(out, colorBackground) {
		t.Error("background fill missing")
	}
}

func TestSVGSankeyRibbons(t *testing.T) {
	sess, visible := renderFixture(t)
	out := drawSVG(t, layout.KindSankey, sess, visible)

	// One cubic ribbon per parent-child edge.
	if got := strings.Count(out, "<path"); got != 3 {
		t.Errorf("ribbon count = %d, want 3", got)
	}
	if !strings.Contains(out, "stroke-width:") {
		t.Error("ribbons must carry weighted stroke widths")
	}
}

func TestSVGNodeLink(t *testing.T) {
	sess, visible := renderFixture(t)
	out := drawSVG(t, layout.KindTidy, sess, visible)

	if got := strings.Count(out, "<circle"); got != 4 {
		t.Errorf("circle count = %d, want one per node", got)
	}
	if got := strings.Count(out, "<path"); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
	// Authors label the dots at full detail.
	if !strings.Contains(out, "alice") {
		t.Error("node label missing")
	}
}

func TestSVGSelectionHighlight(t *testing.T) {
	sess, visible := renderFixture(t)
	sess.Select(2)
	visible = sess.VisibleTree()
	out := drawSVG(t, layout.KindIcicle, sess, visible)

	if !strings.Contains(out, colorSelected) {
		t.Error("selected node must use the highlight fill")
	}
	// Unrelated branch 3 is dimmed.
	if !strings.Contains(out, "fill-opacity:0.25") {
		t.Error("out-of-focus nodes must be dimmed")
	}
}

func TestSVGCollapsedMarker(t *testing.T) {
	sess, visible := renderFixture(t)
	sess.ToggleCollapse(2)
	visible = sess.VisibleTree()
	out := drawSVG(t, layout.KindIcicle, sess, visible)

	// 3 visible bands + background + the collapsed strip.
	if got := strings.Count(out, "<rect"); got != 5 {
		t.Errorf("rect count = %d, want 5", got)
	}
	if !strings.Contains(out, colorSelected) {
		t.Error("collapsed strip missing")
	}
}

func TestSVGSentimentDots(t *testing.T) {
	sess, visible := renderFixture(t)
	sess.Sentiment[2] = model.Sentiment{Label: model.SentimentNegative}
	out := drawSVG(t, layout.KindIcicle, sess, visible)

	if !strings.Contains(out, "#ff5555") {
		t.Error("sentiment dot color missing")
	}
}

func TestNodeFillAndOpacity(t *testing.T) {
	sess, _ := renderFixture(t)
	sess.Select(2)
	rc := renderContext(sess)

	if got := nodeFill(sess.Index[2], rc); got != colorSelected {
		t.Errorf("selected fill = %s", got)
	}
	// Branch color for the sibling branch.
	if got := nodeFill(sess.Index[3], rc); got != sess.Colors[3] {
		t.Errorf("lane fill = %s, want %s", got, sess.Colors[3])
	}
	if nodeOpacity(sess.Index[3], rc) != dimOpacity {
		t.Error("sibling branch must dim when focus is active")
	}
	if nodeOpacity(sess.Index[4], rc) != 1.0 {
		t.Error("descendants of the selection stay at full opacity")
	}
}
