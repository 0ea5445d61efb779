package thread

import (
	"fmt"

	"github.com/a-Gb/hankerlytics/pkg/model"
	"github.com/a-Gb/hankerlytics/pkg/view"
)

// Session owns all mutable state for one loaded thread: the item map, the
// full tree and its index, the collapsed set, focus, sentiment overlay,
// lane colors, and the pan/zoom transform. Core operations take the
// session explicitly; Reset reinitializes every field atomically between
// loads so no state leaks from one thread into the next.
type Session struct {
	Items     map[int64]*model.Item
	Root      *Node
	Index     Index
	Collapsed map[int64]bool
	Focus     Focus
	Colors    LaneColors
	Sentiment model.SentimentOverlay
	View      view.Transform

	palette []string
}

// NewSession returns an empty session using the given lane palette
// (nil means DefaultPalette).
func NewSession(palette []string) *Session {
	s := &Session{palette: palette}
	s.clear()
	return s
}

func (s *Session) clear() {
	s.Items = nil
	s.Root = nil
	s.Index = nil
	s.Collapsed = make(map[int64]bool)
	s.Focus = Focus{Ancestors: map[int64]bool{}, Descendants: map[int64]bool{}}
	s.Colors = make(LaneColors)
	s.Sentiment = make(model.SentimentOverlay)
	s.View = view.NewTransform()
}

// Reset loads a fresh thread into the session: builds the tree and index,
// runs the metric pass, assigns lane colors, and clears collapse, focus,
// sentiment and view state. On "thread not found" the session is left
// cleared and an error is returned; prior state is never half-retained.
func (s *Session) Reset(rootID int64, items map[int64]*model.Item) error {
	s.clear()

	root, index := Build(rootID, items)
	if root == nil {
		return fmt.Errorf("thread %d not found in item map", rootID)
	}
	ComputeMetrics(root)

	s.Items = items
	s.Root = root
	s.Index = index
	s.Colors = AssignLaneColors(root, s.palette)
	return nil
}

// Loaded reports whether the session holds a thread.
func (s *Session) Loaded() bool {
	return s.Root != nil
}

// VisibleTree returns a fresh pruned copy of the full tree honoring the
// current collapsed set. Recomputed on demand, never cached.
func (s *Session) VisibleTree() *Node {
	return Visible(s.Root, s.Collapsed)
}

// ToggleCollapse flips the collapsed state of id and recomputes focus,
// which may have been pointing into the now-hidden region.
func (s *Session) ToggleCollapse(id int64) {
	if _, ok := s.Index[id]; !ok {
		return
	}
	if s.Collapsed[id] {
		delete(s.Collapsed, id)
	} else {
		s.Collapsed[id] = true
	}
	s.Focus = ComputeFocus(s.Index, s.Focus.Selected)
}

// Select sets the focus selection. Selecting 0 clears it.
func (s *Session) Select(id int64) {
	s.Focus = ComputeFocus(s.Index, id)
}

// SelectedNode returns the node for the current selection, or nil.
func (s *Session) SelectedNode() *Node {
	if !s.Focus.Active {
		return nil
	}
	return s.Index[s.Focus.Selected]
}
