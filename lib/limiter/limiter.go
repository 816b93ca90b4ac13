package limiter

import (
	"context"
	"sync"
	"time"
)

// Limiter mirrors the contract of a hosted sliding-window rate limit service:
// one call per inbound request, keyed by client origin. Implementations may
// talk to external infrastructure, so Allow can fail independently of the
// limit decision and callers decide what an infrastructure failure means.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// SlidingWindow is an in-process Limiter allowing at most `limit` requests
// per key within a trailing `window`.
type SlidingWindow struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

func (sw *SlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	cutoff := now.Add(-sw.window)

	kept := sw.hits[key][:0]
	for _, hit := range sw.hits[key] {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}

	if len(kept) >= sw.limit {
		sw.hits[key] = kept
		return false, nil
	}

	sw.hits[key] = append(kept, now)
	return true, nil
}

// Sweep drops keys whose entire window has elapsed. Run it periodically so
// one-off senders do not accumulate forever.
func (sw *SlidingWindow) Sweep() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	cutoff := sw.now().Add(-sw.window)
	for key, hits := range sw.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(sw.hits, key)
		}
	}
}

// StartSweeper runs Sweep on an interval until ctx is done.
func (sw *SlidingWindow) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sw.Sweep()
		}
	}
}
