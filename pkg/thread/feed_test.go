package thread

import (
	"testing"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

func TestBuildFeed(t *testing.T) {
	stories := []*model.Item{
		{ID: 10, Type: model.TypeStory, Title: "first"},
		{ID: 20, Type: model.TypeStory, Title: "second"},
	}
	previews := map[int64]map[int64]*model.Item{
		10: {
			10: stories[0],
			11: {ID: 11, Type: model.TypeComment},
		},
	}
	// Story 10's preview carries a reply; story 20 has none yet.
	previews[10][10].Kids = []int64{11}

	root, index := BuildFeed("top stories", stories, previews)
	if root.ID != 0 {
		t.Errorf("synthetic root id = %d, want 0", root.ID)
	}
	if len(root.Children) != 2 {
		t.Fatalf("feed children = %d, want 2", len(root.Children))
	}
	if root.Children[0].ID != 10 || root.Children[1].ID != 20 {
		t.Error("feed order must be preserved")
	}
	if index[11].Depth != 2 {
		t.Errorf("preview comment depth = %d, want 2", index[11].Depth)
	}
	if root.Children[0].Depth != 1 {
		t.Errorf("story depth = %d, want 1", root.Children[0].Depth)
	}
	if root.DescCount != 3 {
		t.Errorf("feed DescCount = %d, want 3", root.DescCount)
	}
	if index[20].IsLeaf() != true {
		t.Error("story without a preview must be a leaf")
	}
}
