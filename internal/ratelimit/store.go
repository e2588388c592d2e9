package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidConfig is returned when a check is called with a non-positive
// limit/window or an empty identifier. State is never touched in that case.
var ErrInvalidConfig = errors.New("ratelimit: invalid configuration")

// Result is computed fresh on every check and never stored.
type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

type entry struct {
	count     int
	resetTime time.Time
}

// Store is a single-process fixed-window counter keyed by client identifier.
// Each instance owns its map, so tests can run against independent stores
// instead of sharing process-wide state. Not suitable for multi-instance
// deployments; counters live and die with the process.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry

	stopOnce sync.Once
	stop     chan struct{}
}

// NewStore creates a store and starts a background sweep that drops expired
// entries every cleanupInterval to bound memory growth. A non-positive
// interval falls back to 10 minutes. Call Stop when done.
func NewStore(cleanupInterval time.Duration) *Store {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}

	s := &Store{
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}

	go s.cleanupLoop(cleanupInterval)

	return s
}

// Check applies a fixed-window policy of max requests per window to the given
// identifier. The first call in a window (or a call after the window expired)
// replaces the entry with count=1; later calls increment it. Once the count
// exceeds max the call is denied and the reset time is left unchanged, so the
// caller must wait out the window.
func (s *Store) Check(max int, window time.Duration, identifier string) (Result, error) {
	if max <= 0 || window <= 0 || identifier == "" {
		return Result{}, ErrInvalidConfig
	}

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identifier]
	if !ok || now.After(e.resetTime) {
		e = &entry{count: 1, resetTime: now.Add(window)}
		s.entries[identifier] = e

		return Result{Allowed: true, Remaining: max - 1, ResetTime: e.resetTime}, nil
	}

	e.count++

	if e.count > max {
		return Result{Allowed: false, Remaining: 0, ResetTime: e.resetTime}, nil
	}

	remaining := max - e.count
	if remaining < 0 {
		remaining = 0
	}

	return Result{Allowed: true, Remaining: remaining, ResetTime: e.resetTime}, nil
}

// Len returns the number of tracked identifiers, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Stop terminates the background sweep. Safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup(time.Now())
		case <-s.stop:
			return
		}
	}
}

func (s *Store) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if now.After(e.resetTime) {
			delete(s.entries, id)
		}
	}
}
