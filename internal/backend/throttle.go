package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces successive operations at least interval apart.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval}
}

// wait blocks until the next slot opens and claims it. When ctx ends first the
// slot stays unclaimed and ctx.Err() is returned.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.interval <= 0 {
		return nil
	}
	for {
		t.mu.Lock()
		delay := t.interval - time.Since(t.last)
		if t.last.IsZero() || delay <= 0 {
			t.last = time.Now()
			t.mu.Unlock()
			return nil
		}
		t.mu.Unlock()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
