package enrich

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSchedulerFetchesAndCaches(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler[string](Config{},
		func(ctx context.Context, id string) (string, bool, error) {
			calls.Add(1)
			return "name-" + id, true, nil
		}, nil)

	s.Enqueue("a")
	waitFor(t, func() bool {
		_, ok := s.Result("a")
		return ok
	})

	if v, _ := s.Result("a"); v != "name-a" {
		t.Errorf("Result(a) = %q", v)
	}

	// Cached: enqueueing again must not refetch.
	s.Enqueue("a")
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1", calls.Load())
	}
}

func TestSchedulerDeduplicatesInFlight(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	s := NewScheduler[string](Config{},
		func(ctx context.Context, id string) (string, bool, error) {
			calls.Add(1)
			<-release
			return id, true, nil
		}, nil)

	for i := 0; i < 10; i++ {
		s.Enqueue("same")
	}
	waitFor(t, func() bool { return calls.Load() == 1 })
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1 for duplicate enqueues", calls.Load())
	}
	close(release)
}

func TestSchedulerConcurrencyBound(t *testing.T) {
	var current, peak atomic.Int32
	release := make(chan struct{})
	s := NewScheduler[string](Config{MaxConcurrent: 4},
		func(ctx context.Context, id string) (string, bool, error) {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			current.Add(-1)
			return id, true, nil
		}, nil)

	for i := 0; i < 20; i++ {
		s.Enqueue(fmt.Sprintf("id-%d", i))
	}
	waitFor(t, func() bool { return current.Load() == 4 })
	time.Sleep(20 * time.Millisecond)
	if got := s.InFlight(); got != 4 {
		t.Errorf("InFlight() = %d, want 4", got)
	}
	close(release)

	waitFor(t, func() bool { return len(s.Results()) == 20 })
	if p := peak.Load(); p > 4 {
		t.Errorf("peak concurrency = %d, exceeds bound", p)
	}
}

func TestSchedulerRetriesThenGivesUp(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler[string](Config{MaxRetries: 2},
		func(ctx context.Context, id string) (string, bool, error) {
			calls.Add(1)
			return "", false, fmt.Errorf("boom")
		}, nil)

	s.Enqueue("doomed")
	waitFor(t, func() bool { return calls.Load() == 1 && s.InFlight() == 0 })

	// A failed ID does not retry on its own; it waits for the row to be
	// reported visible again.
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("fetch retried without re-enqueue: calls = %d", calls.Load())
	}

	// Re-enqueues retry up to the ceiling: 1 initial + 2 retries.
	s.Enqueue("doomed")
	waitFor(t, func() bool { return calls.Load() == 2 && s.InFlight() == 0 })
	s.Enqueue("doomed")
	waitFor(t, func() bool { return calls.Load() == 3 && s.InFlight() == 0 })

	// Permanently skipped now.
	s.Enqueue("doomed")
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 3 {
		t.Errorf("exhausted ID was refetched: calls = %d", calls.Load())
	}
}

func TestSchedulerEmptyResultCountsAsFailure(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler[*string](Config{MaxRetries: 1},
		func(ctx context.Context, id string) (*string, bool, error) {
			calls.Add(1)
			return nil, false, nil
		}, nil)

	s.Enqueue("missing")
	waitFor(t, func() bool { return calls.Load() == 1 && s.InFlight() == 0 })
	s.Enqueue("missing")
	waitFor(t, func() bool { return calls.Load() == 2 && s.InFlight() == 0 })

	if _, ok := s.Result("missing"); ok {
		t.Error("empty result must not be cached as success")
	}
}

func TestSchedulerCallbackOnSuccess(t *testing.T) {
	var mu sync.Mutex
	got := map[string]string{}
	s := NewScheduler[string](Config{},
		func(ctx context.Context, id string) (string, bool, error) {
			return "v:" + id, true, nil
		},
		func(id, value string, ok bool) {
			mu.Lock()
			got[id] = value
			mu.Unlock()
		})

	s.Enqueue("x")
	s.Enqueue("y")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	})

	mu.Lock()
	defer mu.Unlock()
	if got["x"] != "v:x" || got["y"] != "v:y" {
		t.Errorf("callback values = %+v", got)
	}
}

func TestSchedulerCloseDropsCompletions(t *testing.T) {
	var callbacks atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	s := NewScheduler[string](Config{},
		func(ctx context.Context, id string) (string, bool, error) {
			close(started)
			<-release
			return id, true, nil
		},
		func(string, string, bool) { callbacks.Add(1) })

	s.Enqueue("late")
	<-started
	s.Close()
	close(release)

	// The straggler must still be removed from the in-flight set.
	waitFor(t, func() bool { return s.InFlight() == 0 })

	time.Sleep(50 * time.Millisecond)
	if callbacks.Load() != 0 {
		t.Error("callback fired after Close")
	}
	if _, ok := s.Result("late"); ok {
		t.Error("result stored after Close")
	}

	// Enqueue after close is a no-op.
	s.Enqueue("more")
	time.Sleep(20 * time.Millisecond)
	if s.InFlight() != 0 {
		t.Error("fetch started after Close")
	}
}

func TestSchedulerEmptyIDIgnored(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler[string](Config{},
		func(ctx context.Context, id string) (string, bool, error) {
			calls.Add(1)
			return id, true, nil
		}, nil)

	s.Enqueue("")
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 0 {
		t.Error("empty ID was fetched")
	}
}
