package when

import (
	"context"
	"errors"
)

// Updater calls a function at a fixed rate on its own goroutine while a
// scope runs. Not safe for concurrent use; give each loop its own Updater.
type Updater struct {
	rl     *RateLimit
	update func(ctx context.Context) error
	err    error
}

// NewUpdater creates an updater that calls update at rate ticks per second.
// ctx is cancelled when the scope ends; update errors end the loop early
// and surface from With.
func NewUpdater(rate int, update func(ctx context.Context) error) *Updater {
	return &Updater{
		rl:     NewRateLimit(rate),
		update: update,
	}
}

// With runs fn while update ticks in the background; the loop is stopped
// and awaited when fn returns, whatever fn did. The scope form mirrors
// Instance.With.
func (u *Updater) With(fn func() error) error {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	u.err = nil
	go u.loop(ctx, done)

	ferr := fn()
	cancel()
	<-done
	return errors.Join(ferr, u.err)
}

func (u *Updater) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for ctx.Err() == nil {
		if err := u.update(ctx); err != nil {
			u.err = err
			return
		}
		if err := u.rl.Delay(ctx); err != nil {
			// cancellation is the normal stop path
			return
		}
	}
}
