package model

import (
	"testing"
	"time"
)

func TestFingerprintTracksMutableFields(t *testing.T) {
	base := Item{ID: 1, Type: TypeStory, Score: 5, Descendants: 3, Title: "t", Time: 100}

	same := base
	if base.Fingerprint() != same.Fingerprint() {
		t.Error("identical items must share a fingerprint")
	}

	mutations := []func(*Item){
		func(i *Item) { i.Score = 9 },
		func(i *Item) { i.Descendants = 7 },
		func(i *Item) { i.Kids = []int64{2} },
		func(i *Item) { i.Title = "changed" },
		func(i *Item) { i.Text = "edited" },
		func(i *Item) { i.Deleted = true },
		func(i *Item) { i.Dead = true },
		func(i *Item) { i.Time = 200 },
	}
	for i, mutate := range mutations {
		changed := base
		mutate(&changed)
		if base.Fingerprint() == changed.Fingerprint() {
			t.Errorf("mutation %d did not change the fingerprint", i)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid story", Item{ID: 1, Type: TypeStory}, false},
		{"valid untyped", Item{ID: 1}, false},
		{"zero id", Item{ID: 0, Type: TypeComment}, true},
		{"negative id", Item{ID: -5}, true},
		{"bad type", Item{ID: 1, Type: "podcast"}, true},
	}
	for _, c := range cases {
		err := c.item.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("%s: err = %v, wantErr = %v", c.name, err, c.wantErr)
		}
	}
}

func TestIsStory(t *testing.T) {
	if !(&Item{Type: TypeStory}).IsStory() || !(&Item{Type: TypeJob}).IsStory() {
		t.Error("stories and jobs are top-level submissions")
	}
	if (&Item{Type: TypeComment}).IsStory() {
		t.Error("comments are not submissions")
	}
}

func TestPostedAt(t *testing.T) {
	i := Item{Time: 1700000000}
	if got := i.PostedAt().Unix(); got != 1700000000 {
		t.Errorf("PostedAt = %d, want 1700000000", got)
	}
}

func TestFeedKindEndpoint(t *testing.T) {
	cases := map[FeedKind]string{
		FeedTop:  "topstories",
		FeedNew:  "newstories",
		FeedBest: "beststories",
		FeedAsk:  "askstories",
		FeedShow: "showstories",
		FeedJob:  "jobstories",
	}
	for kind, want := range cases {
		if got := kind.Endpoint(); got != want {
			t.Errorf("Endpoint(%s) = %s, want %s", kind, got, want)
		}
		if !kind.IsValid() {
			t.Errorf("%s should be valid", kind)
		}
	}
	if FeedKind("hot").IsValid() {
		t.Error("unknown feed kind should be invalid")
	}
}

func TestSentimentOverlayMerge(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	o := SentimentOverlay{
		1: {Label: SentimentPositive, At: newer},
		2: {Label: SentimentNeutral, At: older},
	}
	o.Merge(SentimentOverlay{
		1: {Label: SentimentNegative, At: older}, // stale, must lose
		2: {Label: SentimentMixed, At: newer},    // fresher, must win
		3: {Label: SentimentPositive, At: newer}, // new id
	})

	if o[1].Label != SentimentPositive {
		t.Error("stale entry overwrote a newer one")
	}
	if o[2].Label != SentimentMixed {
		t.Error("fresher entry did not win")
	}
	if o[3].Label != SentimentPositive {
		t.Error("new id was not merged")
	}
}
