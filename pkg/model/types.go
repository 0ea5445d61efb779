package model

import (
	"fmt"
	"time"
)

// Item represents a raw remote discussion record (story or comment).
// Items are immutable once fetched and are keyed by ID in a flat item map.
type Item struct {
	ID          int64    `json:"id"`
	Type        ItemType `json:"type"`
	By          string   `json:"by,omitempty"`
	Time        int64    `json:"time,omitempty"` // unix seconds
	Text        string   `json:"text,omitempty"`
	Title       string   `json:"title,omitempty"`
	URL         string   `json:"url,omitempty"`
	Score       int      `json:"score,omitempty"`
	Kids        []int64  `json:"kids,omitempty"` // ordered child ids
	Descendants int      `json:"descendants,omitempty"`
	Deleted     bool     `json:"deleted,omitempty"`
	Dead        bool     `json:"dead,omitempty"`
}

// PostedAt returns the item's timestamp as a time.Time.
func (i *Item) PostedAt() time.Time {
	return time.Unix(i.Time, 0)
}

// IsStory returns true if the item is a top-level submission.
func (i *Item) IsStory() bool {
	return i.Type == TypeStory || i.Type == TypeJob || i.Type == TypePoll
}

// Fingerprint returns a content fingerprint over the item's mutable fields.
// Two fetches of the same item compare equal iff nothing a reader would
// notice has changed. Compared id-by-id in the cache diff.
func (i *Item) Fingerprint() string {
	return fmt.Sprintf("%d|%d|%d|%s|%s|%t|%t|%d",
		i.Score, i.Descendants, len(i.Kids), i.Title, i.Text, i.Deleted, i.Dead, i.Time)
}

// Validate checks that the item is structurally usable.
func (i *Item) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("item id must be positive, got %d", i.ID)
	}
	if i.Type != "" && !i.Type.IsValid() {
		return fmt.Errorf("invalid item type: %s", i.Type)
	}
	return nil
}

// ItemType categorizes a remote record.
type ItemType string

const (
	TypeStory   ItemType = "story"
	TypeComment ItemType = "comment"
	TypeJob     ItemType = "job"
	TypePoll    ItemType = "poll"
	TypePollOpt ItemType = "pollopt"
)

// IsValid returns true if the item type is a recognized value.
func (t ItemType) IsValid() bool {
	switch t {
	case TypeStory, TypeComment, TypeJob, TypePoll, TypePollOpt:
		return true
	}
	return false
}

// FeedKind names a frontpage listing on the remote source.
type FeedKind string

const (
	FeedTop  FeedKind = "top"
	FeedNew  FeedKind = "new"
	FeedBest FeedKind = "best"
	FeedAsk  FeedKind = "ask"
	FeedShow FeedKind = "show"
	FeedJob  FeedKind = "job"
)

// IsValid returns true if the feed kind is a recognized value.
func (k FeedKind) IsValid() bool {
	switch k {
	case FeedTop, FeedNew, FeedBest, FeedAsk, FeedShow, FeedJob:
		return true
	}
	return false
}

// Endpoint returns the remote endpoint name for the feed kind.
func (k FeedKind) Endpoint() string {
	switch k {
	case FeedTop:
		return "topstories"
	case FeedNew:
		return "newstories"
	case FeedBest:
		return "beststories"
	case FeedAsk:
		return "askstories"
	case FeedShow:
		return "showstories"
	case FeedJob:
		return "jobstories"
	}
	return ""
}
