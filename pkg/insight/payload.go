// Package insight prepares thread content for the optional remote
// classification integration and merges its responses back into the
// sentiment overlay. It also computes local shape statistics for the
// payload's root summary.
package insight

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/a-Gb/hankerlytics/pkg/model"
	"github.com/a-Gb/hankerlytics/pkg/thread"
)

// Scope selects which slice of the thread goes into a payload.
type Scope string

const (
	// ScopeThread sends the whole visible tree.
	ScopeThread Scope = "thread"
	// ScopeSubtree sends the selection and everything under it.
	ScopeSubtree Scope = "subtree"
	// ScopeStack sends the ancestor chain from root to the selection.
	ScopeStack Scope = "stack"
)

// IsValid returns true for a recognized scope.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeThread, ScopeSubtree, ScopeStack:
		return true
	}
	return false
}

// PayloadItem is one flattened visible item.
type PayloadItem struct {
	ID     int64  `json:"id"`
	Parent int64  `json:"parent,omitempty"`
	Author string `json:"author,omitempty"`
	Time   int64  `json:"time,omitempty"`
	Text   string `json:"text,omitempty"`
	Depth  int    `json:"depth"`
}

// Payload is the serializable request body for the classification
// integration: a root summary plus the flattened item list for the scope.
type Payload struct {
	Title    string      `json:"title"`
	Author   string      `json:"author,omitempty"`
	URL      string      `json:"url,omitempty"`
	Stats    Stats       `json:"stats"`
	Scope    Scope       `json:"scope"`
	Items    []PayloadItem `json:"items"`
}

// Encode serializes the payload.
func (p *Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// BuildPayload flattens the session's visible tree according to scope.
// Subtree and stack scopes require an active selection.
func BuildPayload(sess *thread.Session, scope Scope) (*Payload, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("unknown scope: %s", scope)
	}
	if !sess.Loaded() {
		return nil, fmt.Errorf("no thread loaded")
	}

	visible := sess.VisibleTree()
	var nodes []*thread.Node

	switch scope {
	case ScopeThread:
		visible.Walk(func(n *thread.Node) { nodes = append(nodes, n) })

	case ScopeSubtree:
		sel := findVisible(visible, sess.Focus.Selected)
		if sel == nil {
			return nil, fmt.Errorf("subtree scope requires a visible selection")
		}
		sel.Walk(func(n *thread.Node) { nodes = append(nodes, n) })

	case ScopeStack:
		sel := findVisible(visible, sess.Focus.Selected)
		if sel == nil {
			return nil, fmt.Errorf("stack scope requires a visible selection")
		}
		// Root-to-selection order.
		var chain []*thread.Node
		for n := sel; n != nil; n = n.Parent {
			chain = append([]*thread.Node{n}, chain...)
		}
		nodes = chain
	}

	root := sess.Root
	p := &Payload{
		Title:  root.Item.Title,
		Author: root.Item.By,
		URL:    root.Item.URL,
		Stats:  ComputeStats(root),
		Scope:  scope,
		Items:  make([]PayloadItem, 0, len(nodes)),
	}
	for _, n := range nodes {
		p.Items = append(p.Items, PayloadItem{
			ID:     n.ID,
			Parent: n.ParentID(),
			Author: n.Item.By,
			Time:   n.Item.Time,
			Text:   n.Item.Text,
			Depth:  n.Depth,
		})
	}
	return p, nil
}

// findVisible locates an id inside a visible tree copy (the session index
// points at full-tree nodes, not the copy).
func findVisible(root *thread.Node, id int64) *thread.Node {
	var found *thread.Node
	root.Walk(func(n *thread.Node) {
		if n.ID == id {
			found = n
		}
	})
	return found
}

// SentimentEntry is one element of the structured sentiment list a
// classification response may carry.
type SentimentEntry struct {
	ID    int64                `json:"id"`
	Label model.SentimentLabel `json:"label"`
	Score *float64             `json:"score,omitempty"`
}

// MergeSentiments folds response entries into the overlay, stamping them
// with now. Entries with unknown labels or out-of-range scores are
// dropped; a partially valid response is still useful.
func MergeSentiments(overlay model.SentimentOverlay, entries []SentimentEntry, now time.Time) int {
	merged := 0
	for _, e := range entries {
		if !e.Label.IsValid() {
			continue
		}
		if e.Score != nil && (*e.Score < -1 || *e.Score > 1) {
			continue
		}
		overlay[e.ID] = model.Sentiment{Label: e.Label, Score: e.Score, At: now}
		merged++
	}
	return merged
}
