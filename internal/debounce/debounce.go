// Package debounce delays an action until input has been quiet for a while.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs action with the latest triggered value once no new value has
// arrived for the quiet period. Earlier pending values are dropped.
type Debouncer[T any] struct {
	quiet  time.Duration
	action func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func New[T any](quiet time.Duration, action func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, action: action}
}

// Trigger restarts the quiet period with v as the pending value.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		// a newer Trigger or Stop raced the timer
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		d.action(v)
	})
}

// Stop drops any pending value. Later triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
