package service

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period used for interactive editing.
const DefaultDebounceDelay = 300 * time.Millisecond

// LookupDebouncer coalesces bursts of work keyed by session into one call
// after a quiet period. It exists to trim redundant catalog lookups while an
// editor is typing quantities; the aggregation itself always runs
// synchronously on the request path, so results are identical with or
// without it.
type LookupDebouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
}

// NewLookupDebouncer creates a debouncer with the given quiet period.
func NewLookupDebouncer(delay time.Duration) *LookupDebouncer {
	return &LookupDebouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Trigger schedules fn to run after the quiet period. A newer trigger for
// the same key supersedes any pending one.
func (d *LookupDebouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending work for the key.
func (d *LookupDebouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
		delete(d.timers, key)
	}
}
