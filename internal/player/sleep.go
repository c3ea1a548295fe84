package player

import (
	"sync"
	"time"
)

// SleepTimer pauses playback after a delay. It is entirely client-local:
// the daemon never knows a timer exists, and the timer does not survive the
// process. Setting a new timer replaces any pending one.
type SleepTimer struct {
	mu       sync.Mutex
	gen      uint64
	timer    *time.Timer
	deadline time.Time
	pause    func()
}

// NewSleepTimer creates a timer that calls pause when it fires.
func NewSleepTimer(pause func()) *SleepTimer {
	return &SleepTimer{pause: pause}
}

// Set arms the timer to fire after d, replacing any pending timer. A
// non-positive duration disarms instead.
func (t *SleepTimer) Set(d time.Duration) {
	if d <= 0 {
		t.Cancel()
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	// The generation token lets a fire from a replaced timer be told apart
	// from the current one: Stop does not help when the old timer already
	// expired and its fire is waiting on the mutex.
	t.gen++
	gen := t.gen
	t.deadline = time.Now().Add(d)
	t.timer = time.AfterFunc(d, func() { t.fire(gen) })
}

func (t *SleepTimer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.deadline = time.Time{}
	pause := t.pause
	t.mu.Unlock()
	if pause != nil {
		pause()
	}
}

// Cancel disarms the timer without pausing.
func (t *SleepTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.deadline = time.Time{}
}

// Active reports whether a timer is pending.
func (t *SleepTimer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Remaining returns the time until the timer fires, or 0 when inactive.
func (t *SleepTimer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		return 0
	}
	d := time.Until(t.deadline)
	if d < 0 {
		return 0
	}
	return d
}
