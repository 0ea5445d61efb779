package hn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

// fakeSource serves items from a map, optionally failing some ids, and
// tracks call counts and the in-flight high-water mark.
type fakeSource struct {
	items map[int64]*model.Item
	fail  map[int64]bool
	delay time.Duration

	mu    sync.Mutex
	calls map[int64]int

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFakeSource(kids map[int64][]int64) *fakeSource {
	f := &fakeSource{
		items: make(map[int64]*model.Item),
		fail:  make(map[int64]bool),
		calls: make(map[int64]int),
	}
	add := func(id int64) {
		if _, ok := f.items[id]; !ok {
			f.items[id] = &model.Item{ID: id, Type: model.TypeComment}
		}
	}
	for id, ks := range kids {
		add(id)
		f.items[id].Kids = ks
		for _, k := range ks {
			add(k)
		}
	}
	return f
}

func (f *fakeSource) Item(ctx context.Context, id int64) (*model.Item, error) {
	cur := f.inFlight.Add(1)
	for {
		max := f.maxInFlight.Load()
		if cur <= max || f.maxInFlight.CompareAndSwap(max, cur) {
			break
		}
	}
	defer f.inFlight.Add(-1)

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	f.calls[id]++
	f.mu.Unlock()

	if f.fail[id] {
		return nil, errors.New("synthetic failure")
	}
	item, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func TestFetchTreeWholeThread(t *testing.T) {
	src := newFakeSource(map[int64][]int64{
		1: {2, 3},
		2: {4},
	})
	f := NewTreeFetcher(src, 4, 0)

	items, err := f.FetchTree(context.Background(), 1, FetchOptions{})
	if err != nil {
		t.Fatalf("FetchTree: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("fetched %d items, want 4", len(items))
	}
	for _, id := range []int64{1, 2, 3, 4} {
		if items[id] == nil {
			t.Errorf("item %d missing", id)
		}
	}
}

func TestFetchTreeAbandonsFailedBranch(t *testing.T) {
	src := newFakeSource(map[int64][]int64{
		1: {2, 3},
		2: {4},
	})
	src.fail[2] = true
	f := NewTreeFetcher(src, 2, 0)

	items, err := f.FetchTree(context.Background(), 1, FetchOptions{})
	if err != nil {
		t.Fatalf("a single failed item must not fail the fetch: %v", err)
	}
	if items[1] == nil || items[3] == nil {
		t.Error("siblings of the failed branch must survive")
	}
	if items[2] != nil {
		t.Error("the failed item must be absent")
	}
	if items[4] != nil {
		t.Error("descendants of the failed branch are unreachable")
	}
}

func TestFetchTreeDeduplicates(t *testing.T) {
	// Both 2 and 3 list 4 as a kid; it must be fetched once.
	src := newFakeSource(map[int64][]int64{
		1: {2, 3},
		2: {4},
		3: {4},
	})
	f := NewTreeFetcher(src, 1, 0)

	items, err := f.FetchTree(context.Background(), 1, FetchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 {
		t.Errorf("fetched %d items, want 4", len(items))
	}
	if src.calls[4] != 1 {
		t.Errorf("item 4 fetched %d times, want 1", src.calls[4])
	}
}

func TestFetchTreeMaxDepth(t *testing.T) {
	src := newFakeSource(map[int64][]int64{
		1: {2},
		2: {3},
		3: {4},
	})
	f := NewTreeFetcher(src, 2, 0)

	items, err := f.FetchTree(context.Background(), 1, FetchOptions{MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Errorf("fetched %d items, want 3 (root plus two levels)", len(items))
	}
	if items[4] != nil {
		t.Error("item beyond the depth cap must not be fetched")
	}
}

func TestFetchTreeMaxNodes(t *testing.T) {
	src := newFakeSource(map[int64][]int64{
		1: {2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	})
	f := NewTreeFetcher(src, 3, 0)

	items, err := f.FetchTree(context.Background(), 1, FetchOptions{MaxNodes: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) > 5 {
		t.Errorf("fetched %d items, cap is 5", len(items))
	}
	if items[1] == nil {
		t.Error("the root always lands")
	}
}

func TestFetchTreeConcurrencyBound(t *testing.T) {
	src := newFakeSource(map[int64][]int64{
		1: {2, 3, 4, 5, 6, 7, 8},
	})
	src.delay = 5 * time.Millisecond
	f := NewTreeFetcher(src, 2, 0)

	if _, err := f.FetchTree(context.Background(), 1, FetchOptions{}); err != nil {
		t.Fatal(err)
	}
	if got := src.maxInFlight.Load(); got > 2 {
		t.Errorf("in-flight high-water mark %d exceeds concurrency 2", got)
	}
}

func TestFetchTreeCancellation(t *testing.T) {
	src := newFakeSource(map[int64][]int64{
		1: {2, 3, 4},
	})
	src.delay = 50 * time.Millisecond
	f := NewTreeFetcher(src, 1, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := f.FetchTree(ctx, 1, FetchOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFetchTreeProgress(t *testing.T) {
	src := newFakeSource(map[int64][]int64{
		1: {2, 3},
		2: {4, 5},
	})
	f := NewTreeFetcher(src, 1, 2)

	var reports []Progress
	_, err := f.FetchTree(context.Background(), 1, FetchOptions{
		OnProgress: func(p Progress) { reports = append(reports, p) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) == 0 {
		t.Fatal("expected progress reports")
	}
	last := reports[len(reports)-1]
	if !last.Done {
		t.Error("the final report must set Done")
	}
	if last.Fetched != 5 || last.Pending != 0 {
		t.Errorf("final report = %+v, want 5 fetched, 0 pending", last)
	}
	for i := 0; i < len(reports)-1; i++ {
		if reports[i].Done {
			t.Error("only the final report sets Done")
		}
		if reports[i+1].Fetched < reports[i].Fetched {
			t.Error("fetched count must be monotonic")
		}
	}
}
