package internal

import (
	"errors"
	"fmt"
)

// ErrMustNotBeCalled marks methods that are easy to call when they really
// are not what should be called.
var ErrMustNotBeCalled = errors.New("must not be called")

// ErrReactionCalledDirectly is returned when a predicate-bound reaction is
// invoked directly; the executor drain loop is the only legitimate caller.
var ErrReactionCalledDirectly = fmt.Errorf("%w: reaction can only be called by its executor", ErrMustNotBeCalled)

// ErrFieldConfiguration indicates a field definition or registration is
// improper.
var ErrFieldConfiguration = errors.New("field configuration error")

// ErrFieldAlreadyBound indicates an instance already has a binding for a
// field. Instances bind their fields once at construction; a second binding
// is a fault in whatever constructed the instance.
var ErrFieldAlreadyBound = fmt.Errorf("%w: already bound", ErrFieldConfiguration)

// ErrInvalidPredicate indicates a predicate expression was built in a way
// that cannot mean what it appears to mean.
var ErrInvalidPredicate = errors.New("invalid predicate expression")

// ErrNotOrdered indicates two values were compared with an ordering operator
// but have no defined order.
var ErrNotOrdered = errors.New("values cannot be ordered")

// ErrNotContainer indicates a containment test against a value that cannot
// hold the item: not a container at all, or a string searched for a
// non-string.
var ErrNotContainer = errors.New("value is not a container")

// ErrExecutor is the base of the executor life cycle errors.
var ErrExecutor = errors.New("executor error")

// ErrExecutorNotStarted indicates an action that requires a started executor.
var ErrExecutorNotStarted = fmt.Errorf("%w: not started", ErrExecutor)

// ErrExecutorAlreadyStarted indicates a second Start. The executor may have
// already terminated; termination is terminal and executors do not restart.
var ErrExecutorAlreadyStarted = fmt.Errorf("%w: already started", ErrExecutor)

// ErrExecutorTerminated indicates a submission after the executor shut down.
var ErrExecutorTerminated = fmt.Errorf("%w: terminated", ErrExecutor)
