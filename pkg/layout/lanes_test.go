package layout

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/a-Gb/hankerlytics/pkg/thread"
)

func lanesFixture(t *testing.T) *thread.Node {
	t.Helper()
	return buildVisible(t, map[int64][]int64{
		1: {2, 3},
		2: {4, 5},
		3: {6},
	})
}

func TestLanesColumnsAndStacking(t *testing.T) {
	visible := lanesFixture(t)
	lanesLayout{}.Compute(visible, testCtx())

	p := DefaultParams()
	visible.Walk(func(n *thread.Node) {
		if !approx(n.X, float64(n.Depth)*p.ColumnSpacing) {
			t.Errorf("node %d at x=%f, want %f", n.ID, n.X, float64(n.Depth)*p.ColumnSpacing)
		}
	})

	lane2 := visible.Children[0]
	if !approx(lane2.Children[0].Y, 0) || !approx(lane2.Children[1].Y, p.RowSpacing) {
		t.Errorf("first lane leaves at %f,%f, want 0,%f",
			lane2.Children[0].Y, lane2.Children[1].Y, p.RowSpacing)
	}
	// Internal node centered on its children.
	if !approx(lane2.Y, p.RowSpacing/2) {
		t.Errorf("lane head y=%f, want %f", lane2.Y, p.RowSpacing/2)
	}
}

func TestLanesSeparatedByGap(t *testing.T) {
	visible := lanesFixture(t)
	lanesLayout{}.Compute(visible, testCtx())

	p := DefaultParams()
	// Second lane starts one LaneGap below the first lane's last row slot.
	wantTop := 2*p.RowSpacing + p.LaneGap
	lane3 := visible.Children[1]
	if !approx(lane3.Children[0].Y, wantTop) {
		t.Errorf("second lane top = %f, want %f", lane3.Children[0].Y, wantTop)
	}
}

func TestLanesRootCentered(t *testing.T) {
	visible := lanesFixture(t)
	lanesLayout{}.Compute(visible, testCtx())

	c0 := visible.Children[0].Y
	c1 := visible.Children[1].Y
	if !approx(visible.Y, (c0+c1)/2) {
		t.Errorf("root y=%f, want midpoint %f", visible.Y, (c0+c1)/2)
	}
}

func TestTidyCentering(t *testing.T) {
	visible := lanesFixture(t)
	tidyLayout{}.Compute(visible, testCtx())

	p := DefaultParams()
	// Leaves stack globally: 4, 5, 6 at consecutive rows.
	wantLeaf := []float64{0, p.RowSpacing, 2 * p.RowSpacing}
	leaves := []*thread.Node{
		visible.Children[0].Children[0],
		visible.Children[0].Children[1],
		visible.Children[1].Children[0],
	}
	for i, leaf := range leaves {
		if !approx(leaf.Y, wantLeaf[i]) {
			t.Errorf("leaf %d at y=%f, want %f", leaf.ID, leaf.Y, wantLeaf[i])
		}
	}
	// Every internal node sits at the midpoint of its first and last child.
	visible.Walk(func(n *thread.Node) {
		if len(n.Children) == 0 {
			return
		}
		first := n.Children[0]
		last := n.Children[len(n.Children)-1]
		if !approx(n.Y, (first.Y+last.Y)/2) {
			t.Errorf("node %d at y=%f, want %f", n.ID, n.Y, (first.Y+last.Y)/2)
		}
	})
}

// Leaves never overlap vertically within one tidy layout.
func TestTidyLeafSpacingProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		root := mustBuild(randomTree(rt))
		visible := thread.Visible(root, nil)
		tidyLayout{}.Compute(visible, testCtx())

		p := DefaultParams()
		var prev *thread.Node
		visible.Walk(func(n *thread.Node) {
			if len(n.Children) > 0 {
				return
			}
			if prev != nil && n.Y-prev.Y < p.RowSpacing-1e-6 {
				rt.Fatalf("leaves %d and %d closer than a row", prev.ID, n.ID)
			}
			prev = n
		})
	})
}
