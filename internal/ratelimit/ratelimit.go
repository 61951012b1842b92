// Package ratelimit implements the fixed-window request counter that guards
// registration: at most MaxAttempts requests per client address per Window,
// with timestamps pruned lazily on each request.
package ratelimit

import (
	"sync"
	"time"
)

// Store keeps recent request timestamps per key. The in-memory implementation
// below is process-local; a multi-instance deployment can supply a shared one.
type Store interface {
	// Take prunes timestamps older than window, and if fewer than max remain,
	// records now and returns true. Returns false when the key is over limit.
	Take(key string, now time.Time, window time.Duration, max int) bool
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]time.Time
}

func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string][]time.Time)}
}

func (s *memoryStore) Take(key string, now time.Time, window time.Duration, max int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.entries[key][:0]
	for _, ts := range s.entries[key] {
		if now.Sub(ts) < window {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= max {
		s.entries[key] = recent
		return false
	}

	s.entries[key] = append(recent, now)
	return true
}

// Limiter is constructed once and injected wherever a window needs enforcing.
type Limiter struct {
	store  Store
	window time.Duration
	max    int
	now    func() time.Time
}

func NewLimiter(store Store, window time.Duration, max int) *Limiter {
	return &Limiter{
		store:  store,
		window: window,
		max:    max,
		now:    time.Now,
	}
}

// Allow reports whether the key may make another request, recording it if so.
func (l *Limiter) Allow(key string) bool {
	return l.store.Take(key, l.now(), l.window, l.max)
}
