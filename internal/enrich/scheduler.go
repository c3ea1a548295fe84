// Package enrich fills in metadata the daemon's list payloads omit. List
// entries arrive with a URI and often nothing else; full details are fetched
// lazily, a bounded number at a time, as entries become visible.
package enrich

import (
	"context"
	"sync"

	"github.com/stronk-dev/croon/internal/log"
)

// FetchFunc loads the detail record for one ID. Returning (zero, false, nil)
// means the backend had no data; that counts as a failed attempt.
type FetchFunc[T any] func(ctx context.Context, id string) (T, bool, error)

// ResultFunc is invoked once per successful fetch, without the scheduler's
// lock held.
type ResultFunc[T any] func(id string, value T, ok bool)

// Config bounds the scheduler.
type Config struct {
	// MaxConcurrent caps in-flight fetches. Zero means 4.
	MaxConcurrent int
	// MaxRetries is how many times a failed ID is retried before it is
	// skipped permanently. Zero means 2 (three attempts total).
	MaxRetries int
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 4
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 2
	}
	return c
}

// Scheduler runs bounded-concurrency metadata fetches with retry ceilings
// and per-ID deduplication. Enqueue is idempotent: an ID that is cached,
// in flight, queued, or permanently failed is a no-op. A failed ID below
// the retry ceiling is simply forgotten until something enqueues it again.
type Scheduler[T any] struct {
	cfg    Config
	fetch  FetchFunc[T]
	onDone ResultFunc[T]

	mu       sync.Mutex
	pending  []string
	queued   map[string]bool
	inFlight map[string]bool
	results  map[string]T
	retries  map[string]int
	failed   map[string]bool
	closed   bool
}

// NewScheduler creates a scheduler. onDone may be nil.
func NewScheduler[T any](cfg Config, fetch FetchFunc[T], onDone ResultFunc[T]) *Scheduler[T] {
	return &Scheduler[T]{
		cfg:      cfg.withDefaults(),
		fetch:    fetch,
		onDone:   onDone,
		queued:   make(map[string]bool),
		inFlight: make(map[string]bool),
		results:  make(map[string]T),
		failed:   make(map[string]bool),
		retries:  make(map[string]int),
	}
}

// Enqueue requests a fetch for id. Duplicate requests, cached IDs, and IDs
// that exhausted their retries are ignored.
func (s *Scheduler[T]) Enqueue(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.queued[id] || s.inFlight[id] || s.failed[id] {
		return
	}
	if _, ok := s.results[id]; ok {
		return
	}
	s.queued[id] = true
	s.pending = append(s.pending, id)
	s.drain()
}

// drain starts fetches while capacity allows, FIFO. Caller must hold the
// mutex.
func (s *Scheduler[T]) drain() {
	for len(s.pending) > 0 && len(s.inFlight) < s.cfg.MaxConcurrent {
		id := s.pending[0]
		s.pending = s.pending[1:]
		delete(s.queued, id)
		s.inFlight[id] = true
		go s.run(id)
	}
}

func (s *Scheduler[T]) run(id string) {
	value, ok, err := s.fetch(context.Background(), id)
	if err != nil {
		log.Debugf("enrich: fetch %s: %v", id, err)
		ok = false
	}
	s.complete(id, value, ok)
}

func (s *Scheduler[T]) complete(id string, value T, ok bool) {
	s.mu.Lock()
	delete(s.inFlight, id)
	if s.closed {
		s.mu.Unlock()
		return
	}

	if ok {
		s.results[id] = value
		delete(s.retries, id)
	} else {
		// Failed IDs are not retried on a timer; they become eligible for
		// the next Enqueue, which visibility re-reports when the row comes
		// back into view.
		s.retries[id]++
		if s.retries[id] > s.cfg.MaxRetries {
			s.failed[id] = true
			log.Warnf("enrich: giving up on %s after %d attempts", id, s.retries[id])
		}
	}

	s.drain()
	onDone := s.onDone
	s.mu.Unlock()

	if ok && onDone != nil {
		onDone(id, value, ok)
	}
}

// Result returns the cached value for id, if any.
func (s *Scheduler[T]) Result(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.results[id]
	return v, ok
}

// Results returns a copy of everything fetched so far.
func (s *Scheduler[T]) Results() map[string]T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]T, len(s.results))
	for k, v := range s.results {
		out[k] = v
	}
	return out
}

// InFlight returns the number of fetches currently running.
func (s *Scheduler[T]) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}

// Close stops the scheduler. Fetches already running are left to finish but
// their completions are discarded and no callback fires.
func (s *Scheduler[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = nil
	s.queued = make(map[string]bool)
}
