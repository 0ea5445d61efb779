package insight

import (
	"math"
	"testing"

	"github.com/a-Gb/hankerlytics/pkg/model"
	"github.com/a-Gb/hankerlytics/pkg/thread"
)

func statsTree(t *testing.T) *thread.Node {
	t.Helper()
	items := map[int64]*model.Item{
		1: {ID: 1, Type: model.TypeStory, Kids: []int64{2, 3}},
		2: {ID: 2, Type: model.TypeComment, Kids: []int64{4, 5}},
		3: {ID: 3, Type: model.TypeComment},
		4: {ID: 4, Type: model.TypeComment},
		5: {ID: 5, Type: model.TypeComment},
	}
	root, _ := thread.Build(1, items)
	thread.ComputeMetrics(root)
	return root
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(statsTree(t))

	if s.Comments != 4 {
		t.Errorf("comments = %d, want 4", s.Comments)
	}
	if s.MaxDepth != 2 {
		t.Errorf("max depth = %d, want 2", s.MaxDepth)
	}
	// Depths: 1, 1, 2, 2 → mean 1.5.
	if math.Abs(s.MeanDepth-1.5) > 1e-9 {
		t.Errorf("mean depth = %f, want 1.5", s.MeanDepth)
	}
	if s.Branches != 2 {
		t.Errorf("branches = %d, want 2", s.Branches)
	}
	// Branch sizes 3 and 1.
	if math.Abs(s.MeanBranchSize-2) > 1e-9 {
		t.Errorf("mean branch size = %f, want 2", s.MeanBranchSize)
	}
	if s.LargestBranch != 3 {
		t.Errorf("largest branch = %d, want 3", s.LargestBranch)
	}
}

func TestComputeStatsDegenerate(t *testing.T) {
	if s := ComputeStats(nil); s.Comments != 0 {
		t.Error("nil root must yield zero stats")
	}

	root, _ := thread.Build(1, map[int64]*model.Item{1: {ID: 1, Type: model.TypeStory}})
	thread.ComputeMetrics(root)
	s := ComputeStats(root)
	if s.Comments != 0 || s.Branches != 0 || s.MeanDepth != 0 {
		t.Errorf("lonely story stats = %+v, want zeros", s)
	}
}
