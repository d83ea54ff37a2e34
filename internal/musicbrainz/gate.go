package musicbrainz

import (
	"context"
	"sync"
	"time"
)

// Gate serializes calls to the metadata service so consecutive requests are
// at least one interval apart, process-wide. The mutex makes the gate safe
// should processing ever become concurrent; today calls arrive in strict
// sequential order.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// GateOption customizes a Gate, mainly for tests.
type GateOption func(*Gate)

// WithClock overrides the wall clock the gate reads.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// WithSleeper overrides how the gate blocks between requests.
func WithSleeper(sleep func(context.Context, time.Duration) error) GateOption {
	return func(g *Gate) {
		if sleep != nil {
			g.sleep = sleep
		}
	}
}

// NewGate builds a gate enforcing the given minimum interval between calls.
// A non-positive interval disables waiting.
func NewGate(interval time.Duration, opts ...GateOption) *Gate {
	g := &Gate{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Wait blocks until the configured interval has elapsed since the previous
// call, then records the new call time. Returns the context error if the
// wait is interrupted.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.interval > 0 && !g.last.IsZero() {
		elapsed := g.now().Sub(g.last)
		if remaining := g.interval - elapsed; remaining > 0 {
			if err := g.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	g.last = g.now()
	return nil
}

// Interval reports the configured minimum spacing between calls.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
