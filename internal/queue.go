package internal

import (
	"context"
	"sync"
)

// invocationQueue is an unbounded FIFO. Submitters never block; the drain
// loop waits on a coalesced signal channel so it can also honor context
// cancellation.
type invocationQueue struct {
	mu     sync.Mutex
	items  []Invocation
	closed bool
	signal chan struct{}
}

func newInvocationQueue() *invocationQueue {
	return &invocationQueue{
		signal: make(chan struct{}, 1),
	}
}

// push appends an invocation. Returns false once the queue has shut down.
func (q *invocationQueue) push(inv Invocation) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, inv)
	// coalesced wakeup; a buffer of one is enough for a single drain loop
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// next blocks until an invocation is available, the queue has shut down and
// emptied (ok=false), or ctx is cancelled.
func (q *invocationQueue) next(ctx context.Context) (inv Invocation, ok bool, err error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			inv = q.items[0]
			// drop the reference so consumed invocations can be collected
			q.items[0] = Invocation{}
			if len(q.items) == 1 {
				q.items = q.items[:0]
			} else {
				q.items = q.items[1:]
			}
			q.mu.Unlock()
			return inv, true, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return Invocation{}, false, nil
		}
		select {
		case <-ctx.Done():
			return Invocation{}, false, ctx.Err()
		case <-q.signal:
		}
	}
}

// shutdown stops accepting new invocations and wakes the drain loop. Items
// already queued remain consumable.
func (q *invocationQueue) shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}

// discard drops everything still queued, returning the count. Used when a
// reaction failure terminates the executor.
func (q *invocationQueue) discard() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	q.items = nil
	return n
}

func (q *invocationQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
