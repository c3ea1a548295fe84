package player

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSleepTimerFires(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })

	timer.Set(10 * time.Millisecond)
	waitFor(t, func() bool { return fired.Load() == 1 })

	if timer.Active() {
		t.Error("timer still active after firing")
	}
	if timer.Remaining() != 0 {
		t.Error("Remaining() != 0 after firing")
	}
}

func TestSleepTimerReplaced(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })

	timer.Set(5 * time.Millisecond)
	timer.Set(time.Hour)
	time.Sleep(50 * time.Millisecond)

	if fired.Load() != 0 {
		t.Error("replaced timer fired")
	}
	if !timer.Active() {
		t.Error("replacement timer not active")
	}
	if timer.Remaining() < 59*time.Minute {
		t.Errorf("Remaining() = %v, want about an hour", timer.Remaining())
	}
	timer.Cancel()
}

func TestSleepTimerCancel(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })

	timer.Set(5 * time.Millisecond)
	timer.Cancel()
	time.Sleep(50 * time.Millisecond)

	if fired.Load() != 0 {
		t.Error("cancelled timer fired")
	}
	if timer.Active() {
		t.Error("cancelled timer still active")
	}
}

func TestSleepTimerStaleFireIgnored(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })
	timer.Set(time.Hour)

	// A fire from a timer that was already replaced carries an old
	// generation and must not touch the current one.
	timer.fire(0)

	if fired.Load() != 0 {
		t.Error("stale fire paused playback")
	}
	if !timer.Active() {
		t.Error("stale fire disarmed the current timer")
	}
	timer.Cancel()
}

func TestSleepTimerSetZeroDisarms(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })

	timer.Set(5 * time.Millisecond)
	timer.Set(0)
	time.Sleep(50 * time.Millisecond)

	if fired.Load() != 0 {
		t.Error("disarmed timer fired")
	}
	if timer.Active() {
		t.Error("Set(0) should disarm")
	}
}

func TestSleepTimerInactiveByDefault(t *testing.T) {
	timer := NewSleepTimer(nil)
	if timer.Active() || timer.Remaining() != 0 {
		t.Error("fresh timer should be inactive")
	}
	// Cancel on an inactive timer is a no-op.
	timer.Cancel()
}
