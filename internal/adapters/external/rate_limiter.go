package external

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RateLimiter enforces a minimum delay between the starts of consecutive requests.
// The first request never waits.
type RateLimiter struct {
	clock       clockwork.Clock
	minInterval time.Duration

	mutex       sync.Mutex
	lastRequest time.Time
}

// NewRateLimiter creates a limiter; a nil clock uses the real clock.
func NewRateLimiter(minInterval time.Duration, clock clockwork.Clock) *RateLimiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RateLimiter{
		clock:       clock,
		minInterval: minInterval,
	}
}

// Wait blocks until minInterval has elapsed since the previous request started,
// then records now as the start of the next one.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.lastRequest.IsZero() {
		if wait := r.minInterval - r.clock.Since(r.lastRequest); wait > 0 {
			if err := sleep(ctx, r.clock, wait); err != nil {
				return err
			}
		}
	}

	r.lastRequest = r.clock.Now()
	return nil
}

// sleep waits for d on clock, returning early if ctx is done.
func sleep(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
