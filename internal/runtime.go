package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// drains maps a drain goroutine's id to its executor while the drain loop is
// running. It lets code detect that it is executing inside a reaction.
var drains sync.Map

func registerDrain(e *Executor) {
	drains.Store(goid.Get(), e)
}

func unregisterDrain() {
	drains.Delete(goid.Get())
}

// CurrentExecutor returns the executor whose drain loop owns the calling
// goroutine, or nil when the caller is not inside a reaction.
func CurrentExecutor() *Executor {
	if e, ok := drains.Load(goid.Get()); ok {
		return e.(*Executor)
	}
	return nil
}
