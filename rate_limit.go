package when

import (
	"context"
	"time"
)

// RateLimit paces a loop at a fixed tick rate, like a frame limiter. Each
// Delay call sleeps until the next tick boundary; boundaries stay anchored
// to the start time, so the long-run rate holds even when individual ticks
// jitter. Not safe for concurrent use; give each loop its own RateLimit.
//
//	rl := when.NewRateLimit(60) // 60 ticks per second
//	for ... {
//		if err := rl.Delay(ctx); err != nil { ... }
//	}
type RateLimit struct {
	timePerTick time.Duration
	nextTick    time.Time
	tick        int
	lastDelay   time.Duration
	onOverrun   func(overrun time.Duration)
}

// NewRateLimit creates a limiter at rate ticks per second. A rate of zero
// disables pacing: Delay returns immediately and every tick after the first
// counts as an overrun.
func NewRateLimit(rate int) *RateLimit {
	r := &RateLimit{}
	if rate > 0 {
		r.timePerTick = time.Second / time.Duration(rate)
	}
	return r
}

// OnOverrun registers a callback for missed ticks, called from Delay with
// the time the tick boundary was missed by.
func (r *RateLimit) OnOverrun(fn func(overrun time.Duration)) {
	r.onOverrun = fn
}

// Tick returns how many times Delay has been called.
func (r *RateLimit) Tick() int { return r.tick }

// Delay sleeps until the next tick should happen. A missed boundary reports
// an overrun and returns without sleeping; the boundary after a miss is
// advanced two ticks so the schedule recovers instead of compounding.
func (r *RateLimit) Delay(ctx context.Context) error {
	r.tick++
	now := time.Now()
	var delay time.Duration
	if r.nextTick.IsZero() {
		r.nextTick = now.Add(r.timePerTick)
	} else {
		delay = r.nextTick.Sub(now)
		if delay >= 0 {
			r.nextTick = r.nextTick.Add(r.timePerTick)
		} else {
			if r.onOverrun != nil {
				r.onOverrun(-delay)
			}
			delay = 0
			if r.timePerTick > 0 {
				r.nextTick = r.nextTick.Add(2 * r.timePerTick)
			} else {
				r.nextTick = now
			}
		}
	}
	if r.timePerTick > 0 && delay > r.timePerTick {
		// a skipped tick advanced the boundary two ticks; if the zero-delay
		// tick finished before the skipped one would have been scheduled the
		// computed delay overshoots by one tick
		delay -= r.timePerTick
	}
	r.lastDelay = delay
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
