// Package debounce delays an action until input has been quiet for a
// fixed interval.
package debounce

import (
	"sync"
	"time"
)

// A Debouncer owns at most one pending timer. Every call to [Debouncer.Do]
// cancels the pending one before scheduling the next.
type Debouncer struct {
	mu     sync.Mutex
	timer  *time.Timer
	window time.Duration
}

func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Do runs fn once the window elapses without another call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.timer != t {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
	d.timer = t
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels the pending call and runs fn right away.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}
