package when

import (
	"context"
	"time"

	"github.com/AnatoleLucet/when/internal"
)

// State is an executor's life cycle state.
type State = internal.State

const (
	StateIdle       = internal.StateIdle
	StateRunning    = internal.StateRunning
	StateDraining   = internal.StateDraining
	StateTerminated = internal.StateTerminated
)

// DefaultStopTimeout bounds how long Stop lets the queue drain before
// cancelling the drain loop.
const DefaultStopTimeout = internal.DefaultStopTimeout

// NoStopTimeout makes Stop wait for the drain however long it takes.
const NoStopTimeout = internal.NoStopTimeout

// Executor runs reactions sequentially but asynchronously: field setters
// never block, and reactions submitted to the same executor run strictly in
// submission order, one at a time. Independent executors run concurrently
// with respect to each other.
//
// An executor normally belongs to one instance; share one across instances
// with Class.NewWithExecutor to serialize them against each other.
type Executor struct {
	ex *internal.Executor
}

func NewExecutor() *Executor {
	return &Executor{internal.NewExecutor()}
}

// Start spawns the drain loop. Executors start once and never restart.
func (e *Executor) Start() error { return e.ex.Start() }

// Stop closes the queue to new submissions and lets queued reactions finish.
// If the drain has not completed after timeout the running reaction's
// context is cancelled; zero cancels immediately, NoStopTimeout waits
// indefinitely.
func (e *Executor) Stop(timeout time.Duration) error { return e.ex.Stop(timeout) }

// Wait blocks until the executor terminates and returns its terminal error.
// Every current and future caller sees the same error; a reaction failure
// or a forced cancellation is never swallowed. Calling Wait from inside one
// of the executor's own reactions fails instead of deadlocking.
func (e *Executor) Wait(ctx context.Context) error { return e.ex.Wait(ctx) }

// Err returns the terminal error without waiting.
func (e *Executor) Err() error { return e.ex.Err() }

func (e *Executor) State() State { return e.ex.State() }

func (e *Executor) String() string { return e.ex.String() }
