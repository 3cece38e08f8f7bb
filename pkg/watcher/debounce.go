package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration collapses the burst of events an editor or
// atomic rename produces into a single notification.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback invocation
// after a quiet period.
type Debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a debouncer with the given quiet period. A
// non-positive duration fires callbacks immediately.
func NewDebouncer(d time.Duration) *Debouncer {
	return &Debouncer{d: d}
}

// Trigger schedules fn after the quiet period, resetting the clock if
// a trigger is already pending. Only the latest fn runs.
func (b *Debouncer) Trigger(fn func()) {
	if b.d <= 0 {
		fn()
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, fn)
}

// Cancel drops any pending trigger.
func (b *Debouncer) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
