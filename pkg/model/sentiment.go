package model

import "time"

// SentimentLabel classifies the tone of a single item.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentMixed    SentimentLabel = "mixed"
)

// IsValid returns true if the label is a recognized value.
func (l SentimentLabel) IsValid() bool {
	switch l {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed:
		return true
	}
	return false
}

// Sentiment is an externally supplied classification for one item.
// Score is in [-1, 1] when present. Sentiment is a purely additive
// visual overlay and never affects layout geometry.
type Sentiment struct {
	Label SentimentLabel `json:"label"`
	Score *float64       `json:"score,omitempty"`
	At    time.Time      `json:"at"`
}

// SentimentOverlay maps item ids to their classification.
type SentimentOverlay map[int64]Sentiment

// Merge copies entries from other into the overlay, newest timestamp wins.
func (o SentimentOverlay) Merge(other SentimentOverlay) {
	for id, s := range other {
		if existing, ok := o[id]; ok && existing.At.After(s.At) {
			continue
		}
		o[id] = s
	}
}
