package ledger

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long change notifications must go quiet
// before a rescan fires.
const DefaultQuietPeriod = 400 * time.Millisecond

// Timer is the minimal surface the debouncer needs from a timer, so
// tests can substitute a hand-driven fake for time.Timer.
type Timer interface {
	Reset(d time.Duration) bool
	Stop() bool
}

// TimerFactory schedules fn after d and returns a handle to it.
type TimerFactory func(d time.Duration, fn func()) Timer

func realTimer(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer coalesces bursts of triggers into a single callback after a
// quiet period. A trigger arriving while the callback runs is deferred:
// the window re-arms once the current run's side effects complete, so the
// need to fire is never lost, only redundant triggers collapse.
type Debouncer struct {
	quiet    time.Duration
	fire     func()
	newTimer TimerFactory

	mu      sync.Mutex
	timer   Timer
	running bool
	pending bool
	stopped bool
}

// NewDebouncer creates a debouncer that calls fire after quiet
// uninterrupted time following the last Trigger.
func NewDebouncer(quiet time.Duration, fire func()) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{quiet: quiet, fire: fire, newTimer: realTimer}
}

// SetTimerFactory replaces the timer source. Call before the first
// Trigger; intended for tests driving the debounce clock.
func (d *Debouncer) SetTimerFactory(factory TimerFactory) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.newTimer = factory
}

// Trigger requests a fire. Triggers within the quiet window coalesce.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.running {
		d.pending = true
		return
	}
	if d.timer != nil {
		d.timer.Reset(d.quiet)
		return
	}
	d.timer = d.newTimer(d.quiet, d.onFire)
}

// Stop cancels any armed timer and ignores further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) onFire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.running = true
	d.mu.Unlock()

	d.fire()

	d.mu.Lock()
	d.running = false
	rearm := d.pending && !d.stopped
	d.pending = false
	if rearm {
		d.timer = d.newTimer(d.quiet, d.onFire)
	}
	d.mu.Unlock()
}
