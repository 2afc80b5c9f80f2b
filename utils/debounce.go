package utils

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period recommended for callers
// feeding keystrokes into the search ranker.
const DefaultSearchDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid calls into a single trailing invocation.
// A call superseded within the quiet window is simply never issued —
// the timer reset is the cancellation. Callers of the food/exercise
// pickers use this so the catalog is not queried on every intermediate
// keystroke.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn after the quiet period, replacing any pending call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop drops any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
