package motivation

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs the latest scheduled job after a quiet period. Each Trigger
// cancels the previous job, pending or running, and only the latest job may
// deliver its result.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules job. deliver is called with the job's result while the
// debouncer is locked, so it must not block.
func (d *Debouncer) Trigger(parent context.Context, job func(context.Context) string, deliver func(string)) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.seq++
	seq := d.seq
	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	d.mu.Unlock()

	go func() {
		defer cancel()

		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		result := job(ctx)

		d.mu.Lock()
		defer d.mu.Unlock()
		if d.seq != seq || ctx.Err() != nil {
			return
		}
		deliver(result)
	}()
}

// Stop cancels whatever is scheduled.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
