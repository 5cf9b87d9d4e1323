// Package ratelimit provides a per-client sliding window rate limiter.
//
// State is an in-memory table of client key to ordered request timestamps,
// pruned lazily on each check. It is not persisted, resets on process
// restart, and provides no isolation between processes in a multi-instance
// deployment.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether a request identified by key is admitted.
type Limiter interface {
	// Allow reports whether one more request for key fits within limit
	// requests per window, recording the request when admitted.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Remaining returns how many requests for key are still admissible
	// in the current window.
	Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}

// SlidingWindow is an in-memory Limiter. Safe for concurrent use.
type SlidingWindow struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	now     func() time.Time
}

// NewSlidingWindow creates an empty in-memory limiter.
func NewSlidingWindow() *SlidingWindow {
	return &SlidingWindow{
		entries: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (l *SlidingWindow) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := l.prune(key, now, window)
	if len(kept) >= limit {
		return false, nil
	}
	l.entries[key] = append(kept, now)
	return true, nil
}

// Remaining implements Limiter.
func (l *SlidingWindow) Remaining(_ context.Context, key string, limit int, window time.Duration) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.prune(key, l.now(), window)
	remaining := limit - len(kept)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// prune drops timestamps older than the window, updating the table.
// Caller must hold the lock.
func (l *SlidingWindow) prune(key string, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	stamps := l.entries[key]
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.entries, key)
		return nil
	}
	l.entries[key] = kept
	return kept
}
