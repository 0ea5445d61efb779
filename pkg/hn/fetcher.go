package hn

import (
	"context"
	"log"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

// DefaultConcurrency is the in-flight fetch limit for tree fetches.
const DefaultConcurrency = 12

// DefaultProgressEvery is the progress callback cadence: one report per
// this many successful fetches, plus one final report with Done set.
const DefaultProgressEvery = 25

// ItemFetcher is the single-item fetch dependency of the tree fetcher.
// *Client satisfies it; tests substitute a fake.
type ItemFetcher interface {
	Item(ctx context.Context, id int64) (*model.Item, error)
}

// Progress reports tree-fetch advancement.
type Progress struct {
	Fetched int  // items successfully fetched so far
	Pending int  // ids queued or in flight
	Done    bool // set once on the final report
}

// FetchOptions tunes one tree fetch.
type FetchOptions struct {
	// MaxNodes caps the total fetched item count (0 = unlimited).
	MaxNodes int
	// MaxDepth stops enqueuing children beyond this depth (0 = unlimited;
	// the root is depth 0).
	MaxDepth int
	// OnProgress, when set, is invoked at a fixed cadence during the
	// fetch and once at completion. Called from the collector, never
	// concurrently with itself.
	OnProgress func(Progress)
}

// TreeFetcher walks a discussion tree breadth-first through an
// ItemFetcher, keeping a fixed-size in-flight set full from a FIFO queue
// of pending ids. Each completed fetch enqueues the item's newly
// discovered children.
//
// A failed individual fetch is logged and treated as "branch unavailable";
// it never aborts siblings or the overall fetch. Duplicate ids are
// dropped at enqueue time, so results are idempotent puts keyed by id.
type TreeFetcher struct {
	fetcher       ItemFetcher
	concurrency   int
	progressEvery int
}

// NewTreeFetcher creates a TreeFetcher over the given item source.
// Non-positive concurrency or cadence fall back to the defaults.
func NewTreeFetcher(fetcher ItemFetcher, concurrency, progressEvery int) *TreeFetcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}
	return &TreeFetcher{fetcher: fetcher, concurrency: concurrency, progressEvery: progressEvery}
}

type fetchJob struct {
	id    int64
	depth int
}

type fetchDone struct {
	job  fetchJob
	item *model.Item
	err  error
}

// FetchTree fetches the item rooted at rootID and every reachable
// descendant, subject to the option caps, and returns the flat id→item
// map. Only context cancellation produces an error; per-item failures are
// absorbed.
//
// All map mutation and progress reporting happens on the collector
// goroutine (this one); workers only fetch. That mirrors the single-owner
// discipline the rest of the core relies on: no locks, no interleaved
// mutation.
func (f *TreeFetcher) FetchTree(ctx context.Context, rootID int64, opts FetchOptions) (map[int64]*model.Item, error) {
	items := make(map[int64]*model.Item)
	queued := map[int64]bool{rootID: true}
	queue := []fetchJob{{id: rootID, depth: 0}}

	results := make(chan fetchDone)
	inFlight := 0
	sinceReport := 0

	report := func(done bool) {
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{
				Fetched: len(items),
				Pending: len(queue) + inFlight,
				Done:    done,
			})
		}
	}

	for len(queue) > 0 || inFlight > 0 {
		// Keep the in-flight set full.
		for len(queue) > 0 && inFlight < f.concurrency {
			job := queue[0]
			queue = queue[1:]
			if _, ok := items[job.id]; ok {
				continue
			}
			inFlight++
			go func(job fetchJob) {
				item, err := f.fetcher.Item(ctx, job.id)
				select {
				case results <- fetchDone{job: job, item: item, err: err}:
				case <-ctx.Done():
				}
			}(job)
		}
		if inFlight == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return items, ctx.Err()
		case done := <-results:
			inFlight--
			if done.err != nil {
				log.Printf("warning: fetch %d failed, abandoning branch: %v", done.job.id, done.err)
				continue
			}
			items[done.job.id] = done.item

			childDepth := done.job.depth + 1
			for _, kid := range done.item.Kids {
				if queued[kid] {
					continue
				}
				if opts.MaxDepth > 0 && childDepth > opts.MaxDepth {
					continue
				}
				if opts.MaxNodes > 0 && len(items)+len(queue)+inFlight >= opts.MaxNodes {
					continue
				}
				queued[kid] = true
				queue = append(queue, fetchJob{id: kid, depth: childDepth})
			}

			sinceReport++
			if sinceReport >= f.progressEvery {
				sinceReport = 0
				report(false)
			}
		}
	}

	report(true)
	return items, nil
}
