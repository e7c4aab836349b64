package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopInvocation(desc string) Invocation {
	return NewInvocation(func(context.Context) error { return nil }, desc)
}

func TestInvocationQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("fifo", func(t *testing.T) {
		q := newInvocationQueue()
		require.True(t, q.push(noopInvocation("a")))
		require.True(t, q.push(noopInvocation("b")))
		require.True(t, q.push(noopInvocation("c")))
		assert.Equal(t, 3, q.len())

		var got []string
		for i := 0; i < 3; i++ {
			inv, ok, err := q.next(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			got = append(got, inv.desc)
		}
		assert.Equal(t, []string{"a", "b", "c"}, got)
		assert.Equal(t, 0, q.len())
	})

	t.Run("blocks until a push arrives", func(t *testing.T) {
		q := newInvocationQueue()

		got := make(chan string, 1)
		go func() {
			inv, ok, err := q.next(ctx)
			if err == nil && ok {
				got <- inv.desc
			}
		}()

		q.push(noopInvocation("late"))
		select {
		case desc := <-got:
			assert.Equal(t, "late", desc)
		case <-time.After(time.Second):
			t.Fatal("next never woke up")
		}
	})

	t.Run("shutdown rejects pushes but drains the rest", func(t *testing.T) {
		q := newInvocationQueue()
		require.True(t, q.push(noopInvocation("before")))
		q.shutdown()
		assert.False(t, q.push(noopInvocation("after")))

		inv, ok, err := q.next(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "before", inv.desc)

		_, ok, err = q.next(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("shutdown wakes a blocked next", func(t *testing.T) {
		q := newInvocationQueue()

		done := make(chan bool, 1)
		go func() {
			_, ok, _ := q.next(ctx)
			done <- ok
		}()

		q.shutdown()
		select {
		case ok := <-done:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("next never woke up")
		}
	})

	t.Run("next honors context cancellation", func(t *testing.T) {
		q := newInvocationQueue()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, ok, err := q.next(cancelled)
		assert.False(t, ok)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("discard drops what is queued", func(t *testing.T) {
		q := newInvocationQueue()
		q.push(noopInvocation("a"))
		q.push(noopInvocation("b"))
		assert.Equal(t, 2, q.discard())
		assert.Equal(t, 0, q.len())
		assert.Equal(t, 0, q.discard())
	})
}
