package limiter

import (
	"context"
	"time"
)

// A Limiter enforces a fixed delay between calls to the metadata
// providers. The exact delay is a quota-etiquette tuning parameter, not
// a correctness requirement.
func New(delay time.Duration) *Limiter {
	return &Limiter{delay: delay}
}

type Limiter struct {
	delay  time.Duration
	nextAt time.Time
}

// Wait blocks until the delay since the previous call has elapsed, or
// the context is canceled.
func (lim *Limiter) Wait(ctx context.Context) error {
	if !lim.nextAt.IsZero() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(lim.nextAt)):
		}
	}
	lim.nextAt = time.Now().Add(lim.delay)
	return nil
}

// DelayBy pushes the next permitted call further out, for providers
// that report an explicit retry-after.
func (lim *Limiter) DelayBy(d time.Duration) {
	lim.nextAt = time.Now().Add(d)
}
