package thread

import "testing"

func TestVisibleNoCollapse(t *testing.T) {
	root, _ := Build(1, treeItems(map[int64][]int64{
		1: {2, 3},
		2: {4},
	}))
	ComputeMetrics(root)

	v := Visible(root, nil)
	if CountVisible(v) != 4 {
		t.Errorf("visible count = %d, want 4", CountVisible(v))
	}
	if v == root {
		t.Error("visible tree must be a copy, not the full tree")
	}
	if v.Item != root.Item {
		t.Error("clone must share the Item pointer")
	}
	if v.DescCount != root.DescCount {
		t.Error("clone must carry full-tree metrics")
	}
}

func TestVisibleCollapsed(t *testing.T) {
	root, _ := Build(1, treeItems(map[int64][]int64{
		1: {2, 3},
		2: {4, 5},
	}))
	ComputeMetrics(root)

	collapsed := map[int64]bool{2: true}
	v := Visible(root, collapsed)

	if CountVisible(v) != 3 { // 1, 2, 3
		t.Errorf("visible count = %d, want 3", CountVisible(v))
	}
	if len(v.Children[0].Children) != 0 {
		t.Error("collapsed node must have no children in the copy")
	}
	// The collapsed node still carries its full-tree metrics.
	if v.Children[0].DescCount != 2 {
		t.Errorf("collapsed DescCount = %d, want 2", v.Children[0].DescCount)
	}
}

func TestVisibleIsPure(t *testing.T) {
	root, _ := Build(1, treeItems(map[int64][]int64{1: {2, 3}}))
	ComputeMetrics(root)

	collapsed := map[int64]bool{1: true}
	_ = Visible(root, collapsed)

	if len(root.Children) != 2 {
		t.Error("full tree mutated by Visible")
	}
	if len(collapsed) != 1 || !collapsed[1] {
		t.Error("collapsed set mutated by Visible")
	}
}

func TestVisibleCollapsedRoot(t *testing.T) {
	root, _ := Build(1, treeItems(map[int64][]int64{
		1: {2, 3},
		2: {4},
	}))
	v := Visible(root, map[int64]bool{1: true})
	if CountVisible(v) != 1 {
		t.Errorf("visible count = %d, want 1 (root only)", CountVisible(v))
	}
}

func TestVisibleGeometryZeroed(t *testing.T) {
	root, _ := Build(1, treeItems(map[int64][]int64{1: {2}}))
	root.X, root.W = 100, 50

	v := Visible(root, nil)
	if v.X != 0 || v.W != 0 {
		t.Error("clone geometry must start zeroed")
	}
}
