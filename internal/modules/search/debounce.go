// README: Trailing debouncer for free-text query input.
package search

import (
	"sync"
	"time"
)

// Debouncer delays propagation of a rapidly changing value until no new
// value has arrived for a fixed quiet period. Only the most recent value
// survives a burst; a pending emission is cancelled by Stop so a torn-down
// consumer never receives a late update.
type Debouncer[T any] struct {
	quiet time.Duration
	emit  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewDebouncer[T any](quiet time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, emit: emit}
}

// Update feeds a new input value, resetting the pending timer.
func (d *Debouncer[T]) Update(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.emit(v)
		}
	})
}

// Stop cancels any pending emission. The debouncer ignores further updates.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
