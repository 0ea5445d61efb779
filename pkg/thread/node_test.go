package thread

import (
	"testing"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

// treeItems builds a flat item map from an adjacency list. Ids double as
// scores so fingerprints differ per item.
func treeItems(kids map[int64][]int64) map[int64]*model.Item {
	items := make(map[int64]*model.Item)
	add := func(id int64) {
		if _, ok := items[id]; !ok {
			items[id] = &model.Item{ID: id, Type: model.TypeComment, By: "u", Time: 1700000000 + id}
		}
	}
	for id, ks := range kids {
		add(id)
		items[id].Kids = ks
		for _, k := range ks {
			add(k)
		}
	}
	return items
}

func TestBuildTree(t *testing.T) {
	items := treeItems(map[int64][]int64{
		1: {2, 3},
		2: {4},
	})
	root, index := Build(1, items)
	if root == nil {
		t.Fatal("expected a root")
	}
	if len(index) != 4 {
		t.Errorf("index size = %d, want 4", len(index))
	}
	if len(root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children))
	}
	if root.Children[0].ID != 2 || root.Children[1].ID != 3 {
		t.Errorf("child order = %d,%d, want 2,3", root.Children[0].ID, root.Children[1].ID)
	}
	if got := index[4].Depth; got != 2 {
		t.Errorf("depth of 4 = %d, want 2", got)
	}
	if got := index[4].ParentID(); got != 2 {
		t.Errorf("parent of 4 = %d, want 2", got)
	}
	if got := root.ParentID(); got != 0 {
		t.Errorf("root ParentID = %d, want 0", got)
	}
}

func TestBuildMissingRoot(t *testing.T) {
	root, index := Build(99, treeItems(map[int64][]int64{1: {2}}))
	if root != nil || index != nil {
		t.Error("expected (nil, nil) for a missing root")
	}
}

func TestBuildSkipsMissingKids(t *testing.T) {
	items := treeItems(map[int64][]int64{1: {2}})
	items[1].Kids = []int64{2, 555} // 555 never fetched
	root, index := Build(1, items)
	if len(root.Children) != 1 {
		t.Errorf("children = %d, want 1 (missing kid skipped)", len(root.Children))
	}
	if _, ok := index[555]; ok {
		t.Error("missing kid must not appear in the index")
	}
}

func TestBuildDropsBackEdges(t *testing.T) {
	items := treeItems(map[int64][]int64{
		1: {2},
		2: {1}, // malformed: child points back at root
	})
	root, index := Build(1, items)
	if root == nil {
		t.Fatal("expected a root despite the cycle")
	}
	if len(index) != 2 {
		t.Errorf("index size = %d, want 2", len(index))
	}
	if len(index[2].Children) != 0 {
		t.Error("back-edge must be dropped, not re-linked")
	}
}

func TestWalkPreOrder(t *testing.T) {
	root, _ := Build(1, treeItems(map[int64][]int64{
		1: {2, 5},
		2: {3, 4},
	}))
	var got []int64
	root.Walk(func(n *Node) { got = append(got, n.ID) })
	want := []int64{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("walk[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestComputeMetrics(t *testing.T) {
	root, index := Build(1, treeItems(map[int64][]int64{
		1: {2, 3},
		2: {4, 5},
		4: {6},
	}))
	ComputeMetrics(root)

	cases := []struct {
		id    int64
		desc  int
		total int
	}{
		{1, 5, 6},
		{2, 3, 4},
		{3, 0, 1},
		{4, 1, 2},
		{6, 0, 1},
	}
	for _, c := range cases {
		n := index[c.id]
		if n.DescCount != c.desc {
			t.Errorf("DescCount(%d) = %d, want %d", c.id, n.DescCount, c.desc)
		}
		if n.SubtreeSize != c.total {
			t.Errorf("SubtreeSize(%d) = %d, want %d", c.id, n.SubtreeSize, c.total)
		}
	}
}
