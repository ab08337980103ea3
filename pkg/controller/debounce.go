package controller

import (
	"sync"
	"time"
)

// SearchDelay is the quiet period the search box waits for before a
// fetch fires.
const SearchDelay = 500 * time.Millisecond

// Debouncer collapses a burst of triggers into a single firing after a
// quiet period. Each Trigger cancels the previous arm; only the channel
// of the final trigger in a burst delivers.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	sched Scheduler
	gen   int
	cur   *debounceArm
	stop  func()
}

type debounceArm struct {
	ch    chan int
	fired bool
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration, sched Scheduler) *Debouncer {
	return &Debouncer{delay: delay, sched: sched}
}

// Trigger arms the debouncer and returns a channel that delivers the
// trigger's generation once the quiet period elapses, then closes. When
// a later Trigger supersedes this one the channel closes without a
// value.
func (d *Debouncer) Trigger() <-chan int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()

	d.gen++
	gen := d.gen
	arm := &debounceArm{ch: make(chan int, 1)}
	d.cur = arm
	d.stop = d.sched.AfterFunc(d.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.cur != arm {
			return
		}
		arm.fired = true
		arm.ch <- gen
		close(arm.ch)
	})
	return arm.ch
}

// Gen returns the generation of the most recent trigger.
func (d *Debouncer) Gen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// Cancel drops any armed trigger.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.cur = nil
}

func (d *Debouncer) cancelLocked() {
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
	if d.cur != nil && !d.cur.fired {
		close(d.cur.ch)
	}
}
