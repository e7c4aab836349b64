package when

import (
	"context"
	"errors"
	"time"

	"github.com/AnatoleLucet/when/internal"
)

// Instance is one constructed owner: per-field values plus the executor that
// serializes its reactions. Mutate its state only through Field.Set, and
// only from its own executor or from whichever goroutine drives the entry
// transition.
type Instance struct {
	class *Class
	in    *internal.Instance
	exec  *Executor
}

func (in *Instance) Class() *Class { return in.class }

func (in *Instance) Executor() *Executor { return in.exec }

func (in *Instance) String() string { return in.in.String() }

// Start starts the instance's executor, then runs the class's entry hook.
// A shared executor that another instance already started is fine; a hook
// error tears the executor back down and is returned.
func (in *Instance) Start() error {
	if err := in.exec.Start(); err != nil {
		if in.exec.ex.State() != StateRunning {
			return err
		}
	}
	if in.class.onStart != nil {
		if err := in.class.onStart(in); err != nil {
			_ = in.exec.Stop(0)
			return err
		}
	}
	return nil
}

// Wait blocks until the executor terminates and returns its terminal error:
// nil after a clean drain, otherwise the reaction failure or cancellation
// that ended it.
func (in *Instance) Wait(ctx context.Context) error {
	return in.exec.Wait(ctx)
}

// Run is Start followed by Wait.
func (in *Instance) Run(ctx context.Context) error {
	if err := in.Start(); err != nil {
		return err
	}
	return in.Wait(ctx)
}

// Stop drains the executor, forcing cancellation after timeout. Zero
// cancels immediately; NoStopTimeout waits for the drain indefinitely.
func (in *Instance) Stop(timeout time.Duration) error {
	return in.exec.Stop(timeout)
}

// Cancel stops the executor without letting queued reactions run.
func (in *Instance) Cancel() error {
	return in.exec.Stop(0)
}

// With runs fn between Start and Stop: the scope form of the lifecycle.
// The instance is stopped and awaited when fn returns, whatever fn did.
func (in *Instance) With(ctx context.Context, fn func(*Instance) error) error {
	if err := in.Start(); err != nil {
		return err
	}
	ferr := fn(in)
	serr := in.Stop(DefaultStopTimeout)
	werr := in.Wait(ctx)
	return errors.Join(ferr, serr, werr)
}
