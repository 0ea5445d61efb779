package insight

import (
	"gonum.org/v1/gonum/stat"

	"github.com/a-Gb/hankerlytics/pkg/thread"
)

// Stats summarizes the shape of a thread over the full tree.
type Stats struct {
	Comments       int     `json:"comments"` // strict descendants of the root
	MaxDepth       int     `json:"max_depth"`
	MeanDepth      float64 `json:"mean_depth"`
	DepthStdDev    float64 `json:"depth_stddev"`
	Branches       int     `json:"branches"` // direct replies to the root
	MeanBranchSize float64 `json:"mean_branch_size"`
	LargestBranch  int     `json:"largest_branch"`
}

// ComputeStats walks the full tree once and aggregates its shape.
// Requires the metric pass to have run (SubtreeSize is read).
func ComputeStats(root *thread.Node) Stats {
	s := Stats{}
	if root == nil {
		return s
	}

	var depths []float64
	root.Walk(func(n *thread.Node) {
		if n == root {
			return
		}
		s.Comments++
		depths = append(depths, float64(n.Depth))
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
	})

	s.Branches = len(root.Children)
	if s.Branches > 0 {
		sizes := make([]float64, 0, s.Branches)
		for _, c := range root.Children {
			sizes = append(sizes, float64(c.SubtreeSize))
			if c.SubtreeSize > s.LargestBranch {
				s.LargestBranch = c.SubtreeSize
			}
		}
		s.MeanBranchSize = stat.Mean(sizes, nil)
	}
	if len(depths) > 0 {
		s.MeanDepth = stat.Mean(depths, nil)
		s.DepthStdDev = stat.StdDev(depths, nil)
	}
	return s
}
