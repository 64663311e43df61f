// Package debounce coalesces bursts of search-text edits into a single
// delayed callback carrying the latest value.
package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay is the quiet period required before a value is delivered.
const DefaultDelay = 500 * time.Millisecond

// Debouncer is either idle or holds one pending value with one live timer.
// Every Push stops the previous timer and schedules a new one, so a burst of
// pushes closer together than the delay yields exactly one callback.
type Debouncer struct {
	clock clockwork.Clock
	delay time.Duration
	fn    func(string)

	mu       sync.Mutex
	timer    clockwork.Timer
	gen      uint64
	value    string
	deadline time.Time
	pending  bool
	stopped  bool

	// running counts callbacks in flight so Stop can wait them out.
	running sync.WaitGroup
}

// New returns an idle debouncer that calls fn after delay of quiet. A nil
// clock uses the real clock; a non-positive delay uses DefaultDelay.
func New(delay time.Duration, clock clockwork.Clock, fn func(string)) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{clock: clock, delay: delay, fn: fn}
}

// Delay is the configured quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Push replaces any pending value with v and restarts the quiet period.
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.cancelLocked()

	gen := d.gen
	d.value = v
	d.pending = true
	d.deadline = d.clock.Now().Add(d.delay)
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

// Cancel drops the pending value, if any. Safe to call repeatedly.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Flush delivers the pending value now instead of waiting for the deadline.
// It reports whether anything was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	v := d.value
	d.cancelLocked()
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(v)
	return true
}

// Stop cancels the pending value, ignores every later Push and waits for a
// callback that is already running. It must not be called from the callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.cancelLocked()
	d.stopped = true
	d.mu.Unlock()

	d.running.Wait()
}

// Pending returns the value waiting to be delivered.
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.pending
}

// due is when the pending value fires; zero when idle.
func (d *Debouncer) due() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending {
		return time.Time{}
	}
	return d.deadline
}

// cancelLocked stops the live timer and invalidates its generation, so a
// timer that already started running finds itself stale and returns.
func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	d.deadline = time.Time{}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.deadline = time.Time{}
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn(v)
}
