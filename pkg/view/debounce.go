package view

import (
	"sync"
	"time"
)

// DefaultRelayoutDelay is the default coalescing window for re-layout
// requests driven by rapid pan/zoom events.
const DefaultRelayoutDelay = 80 * time.Millisecond

// RelayoutScheduler coalesces bursts of re-layout requests into a single
// callback. When Request is called repeatedly within the delay window,
// only the last callback runs after the window elapses, so dragging a
// zoom slider triggers one layout pass instead of dozens.
type RelayoutScheduler struct {
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewRelayoutScheduler creates a scheduler with the given delay.
// A zero delay uses DefaultRelayoutDelay.
func NewRelayoutScheduler(delay time.Duration) *RelayoutScheduler {
	if delay == 0 {
		delay = DefaultRelayoutDelay
	}
	return &RelayoutScheduler{delay: delay}
}

// Request schedules relayout to run after the delay, replacing any
// previously scheduled callback that has not fired yet.
func (s *RelayoutScheduler) Request(relayout func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	seq := s.seq

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		// Stop() can lose the race with an already-fired timer; the
		// sequence check keeps a stale callback from running.
		stale := seq != s.seq
		if !stale {
			s.timer = nil
		}
		s.mu.Unlock()
		if stale {
			return
		}
		relayout()
	})
}

// Cancel drops any pending callback, including one whose timer has
// already fired but not yet run.
func (s *RelayoutScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Delay returns the coalescing window.
func (s *RelayoutScheduler) Delay() time.Duration {
	return s.delay
}
