package engine

import (
	"sync"
	"time"
)

// WriteScheduler runs at most one pending callback after a quiet period.
// Scheduling while a callback is pending replaces it and restarts the quiet
// period, so a burst of mutations coalesces into a single write. Cancel
// drops the pending callback without running it.
type WriteScheduler interface {
	Schedule(quiet time.Duration, fn func())
	Cancel()
}

// TimerScheduler is the production WriteScheduler, backed by time.AfterFunc.
type TimerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewTimerScheduler creates an empty scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (t *TimerScheduler) Schedule(quiet time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(quiet, fn)
}

func (t *TimerScheduler) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
