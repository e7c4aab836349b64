package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is an executor's life cycle state.
type State int32

const (
	// StateIdle: created, not started.
	StateIdle State = iota
	// StateRunning: drain loop active, accepting submissions.
	StateRunning
	// StateDraining: shutdown requested, queue emptying, no new submissions.
	StateDraining
	// StateTerminated: drain loop finished, cleanly or via error/cancellation.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// DefaultStopTimeout bounds how long Stop lets the queue drain before
// cancelling the drain loop.
const DefaultStopTimeout = 2 * time.Second

// NoStopTimeout makes Stop wait for the drain however long it takes.
const NoStopTimeout time.Duration = -1

// invocationIDs assigns process-wide ids to invocations. Informational only;
// log messages include the id to aid analysis.
var invocationIDs atomic.Uint64

// Invocation is one scheduled reaction: the callback closed over the change
// that made its predicate true. Immutable once constructed and consumed
// exactly once by the drain loop.
type Invocation struct {
	id   uint64
	run  func(ctx context.Context) error
	desc string
}

// NewInvocation captures a reaction invocation. desc appears only in logs.
func NewInvocation(run func(ctx context.Context) error, desc string) Invocation {
	return Invocation{
		id:   invocationIDs.Add(1),
		run:  run,
		desc: desc,
	}
}

// Executor runs reactions sequentially but asynchronously: submitters never
// block, and invocations submitted to the same executor run strictly in
// submission order, one at a time, each finishing before the next starts.
// Independent executors run concurrently with respect to each other.
//
// Reactions that need concurrency with their own executor may spawn
// goroutines; the executor does not manage those.
type Executor struct {
	id string

	mu     sync.Mutex
	state  State
	queue  *invocationQueue
	cancel context.CancelFunc
	forced *time.Timer
	err    error

	done chan struct{}
}

func NewExecutor() *Executor {
	id := uuid.NewString()[:8]
	return &Executor{
		id:    id,
		queue: newInvocationQueue(),
		done:  make(chan struct{}),
	}
}

func (e *Executor) String() string { return "executor " + e.id }

// logger derives the executor sublogger on each call so SetLogger applies to
// executors created before it.
func (e *Executor) logger() *zerolog.Logger {
	l := Log.With().Str("executor", e.id).Logger()
	return &l
}

func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the terminal error: nil before termination and after a clean
// drain, otherwise the failure or cancellation that ended the executor.
func (e *Executor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Start spawns the drain loop. Executors start once and never restart.
func (e *Executor) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		return fmt.Errorf("%w: %s is %s", ErrExecutorAlreadyStarted, e, e.state)
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.state = StateRunning
	go e.drain(ctx)
	return nil
}

// Submit queues an invocation for ordered execution. The caller is not
// blocked; the queue is unbounded.
func (e *Executor) Submit(inv Invocation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateIdle:
		return fmt.Errorf("%w: cannot submit to %s", ErrExecutorNotStarted, e)
	case StateDraining, StateTerminated:
		return fmt.Errorf("%w: cannot submit to %s", ErrExecutorTerminated, e)
	}
	if !e.queue.push(inv) {
		return fmt.Errorf("%w: cannot submit to %s", ErrExecutorTerminated, e)
	}
	e.logger().Trace().Uint64("invocation", inv.id).Str("change", inv.desc).Msg("scheduled")
	return nil
}

// Stop closes the queue to new submissions and lets the drain loop finish
// what is already queued. If the drain has not completed after timeout the
// drain loop is cancelled; a zero timeout cancels immediately and
// NoStopTimeout waits indefinitely.
func (e *Executor) Stop(timeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateIdle {
		return fmt.Errorf("%w: cannot stop %s", ErrExecutorNotStarted, e)
	}
	if e.state == StateTerminated {
		return nil
	}
	e.logger().Debug().Msg("stopping")
	e.state = StateDraining
	e.queue.shutdown()
	switch {
	case timeout == 0:
		e.cancel()
	case timeout > 0 && e.forced == nil:
		cancel := e.cancel
		done := e.done
		e.forced = time.AfterFunc(timeout, func() {
			select {
			case <-done:
			default:
				e.logger().Error().Dur("timeout", timeout).Msg("cancelled, shutdown took too long")
				cancel()
			}
		})
	}
	return nil
}

// Wait blocks until the executor terminates and returns its terminal error.
// Every current and future caller sees the same error; a reaction failure or
// a forced cancellation is never swallowed.
func (e *Executor) Wait(ctx context.Context) error {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state == StateIdle {
		return fmt.Errorf("%w: cannot wait for %s", ErrExecutorNotStarted, e)
	}
	if CurrentExecutor() == e {
		return fmt.Errorf("%w: waiting for %s from one of its own reactions would deadlock", ErrExecutor, e)
	}
	select {
	case <-e.done:
		return e.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain is the queue worker: it takes pending invocations and executes them
// one at a time, each to completion before the next.
func (e *Executor) drain(ctx context.Context) {
	registerDrain(e)
	defer unregisterDrain()

	var err error
	for {
		inv, ok, werr := e.queue.next(ctx)
		if werr != nil {
			e.logger().Error().Err(werr).Msg("cancelled")
			err = werr
			break
		}
		if !ok {
			e.logger().Info().Msg("stopped")
			break
		}
		e.logger().Debug().Uint64("invocation", inv.id).Str("change", inv.desc).Msg("calling")
		if rerr := e.runReaction(ctx, inv); rerr != nil {
			if errors.Is(rerr, context.Canceled) {
				// cancellation is propagated to waiters, not swallowed
				e.logger().Error().Err(rerr).Uint64("invocation", inv.id).Msg("cancelled")
			} else {
				// a failed reaction means the modeled state is inconsistent;
				// terminate and surface the error to waiters
				e.logger().Error().Err(rerr).Uint64("invocation", inv.id).Msg("stopping on error")
			}
			err = rerr
			break
		}
	}
	e.finish(err)
}

// runReaction executes one invocation. A panic in the reaction must not kill
// the process; it becomes the executor's terminal error like any failure.
func (e *Executor) runReaction(ctx context.Context, inv Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: reaction panicked: %v", ErrExecutor, r)
		}
	}()
	return inv.run(ctx)
}

// finish records the terminal state, discards whatever is still queued, and
// releases waiters.
func (e *Executor) finish(err error) {
	e.mu.Lock()
	e.state = StateTerminated
	e.err = err
	if e.forced != nil {
		e.forced.Stop()
	}
	e.cancel()
	e.queue.shutdown()
	if n := e.queue.discard(); n > 0 {
		e.logger().Warn().Int("discarded", n).Msg("discarding queued reactions")
	}
	e.mu.Unlock()
	close(e.done)
}
