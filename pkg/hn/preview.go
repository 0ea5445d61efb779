package hn

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

// Two-phase preview loading defaults: the above-the-fold prefix loads
// first at full concurrency, the remainder trickles in behind it.
const (
	DefaultPriorityCount       = 6
	DefaultPriorityConcurrency = 4
	DefaultBackgroundConcurrency = 2
)

// PreviewCaps bounds each per-story subtree fetch so a frontpage of
// mega-threads cannot drag the whole listing down.
var PreviewCaps = FetchOptions{MaxNodes: 60, MaxDepth: 4}

// FetchFeedItems fetches the story items for a listing with bounded
// concurrency. Individual failures are logged and produce gaps, not
// errors; feed order is preserved in the returned slice (failed slots are
// dropped).
func (c *Client) FetchFeedItems(ctx context.Context, ids []int64, concurrency int) ([]*model.Item, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	fetched := make([]*model.Item, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			item, err := c.Item(gctx, id)
			if err != nil {
				log.Printf("warning: feed item %d unavailable: %v", id, err)
				return nil
			}
			fetched[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]*model.Item, 0, len(fetched))
	for _, item := range fetched {
		if item != nil {
			items = append(items, item)
		}
	}
	return items, nil
}

// PreviewLoader loads reply subtrees for mosaic cards in two phases: a
// small priority prefix of visible stories first, then the remainder at a
// lower concurrency, so first paint of above-the-fold cards is never
// queued behind below-the-fold work.
type PreviewLoader struct {
	fetcher  *TreeFetcher
	priority int
	priConc  int64
	bgConc   int64
}

// NewPreviewLoader creates a loader over the given tree fetcher.
// Non-positive tuning values fall back to the defaults.
func NewPreviewLoader(fetcher *TreeFetcher, priority, priConc, bgConc int) *PreviewLoader {
	if priority <= 0 {
		priority = DefaultPriorityCount
	}
	if priConc <= 0 {
		priConc = DefaultPriorityConcurrency
	}
	if bgConc <= 0 {
		bgConc = DefaultBackgroundConcurrency
	}
	return &PreviewLoader{
		fetcher:  fetcher,
		priority: priority,
		priConc:  int64(priConc),
		bgConc:   int64(bgConc),
	}
}

// Load fetches the capped reply subtree of every story and invokes
// onReady with each result as it lands. onReady may be called from
// multiple goroutines; completion of the priority prefix is awaited
// before any background fetch starts. Returns only on context
// cancellation or full completion.
func (l *PreviewLoader) Load(ctx context.Context, storyIDs []int64, onReady func(storyID int64, items map[int64]*model.Item)) error {
	split := l.priority
	if split > len(storyIDs) {
		split = len(storyIDs)
	}

	if err := l.loadPhase(ctx, storyIDs[:split], l.priConc, onReady); err != nil {
		return err
	}
	return l.loadPhase(ctx, storyIDs[split:], l.bgConc, onReady)
}

func (l *PreviewLoader) loadPhase(ctx context.Context, ids []int64, conc int64, onReady func(int64, map[int64]*model.Item)) error {
	sem := semaphore.NewWeighted(conc)
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			items, err := l.fetcher.FetchTree(gctx, id, PreviewCaps)
			if err != nil {
				return err // context cancellation only
			}
			if len(items) > 0 {
				onReady(id, items)
			}
			return nil
		})
	}
	return g.Wait()
}
