package when

import "github.com/AnatoleLucet/when/internal"

// Errors reported by the engine. Definition-time misuse (duplicate field
// registration, double binding, ordering a predicate) panics, because the
// definition itself is broken; runtime operations return errors.
var (
	ErrMustNotBeCalled        = internal.ErrMustNotBeCalled
	ErrReactionCalledDirectly = internal.ErrReactionCalledDirectly
	ErrFieldConfiguration     = internal.ErrFieldConfiguration
	ErrFieldAlreadyBound      = internal.ErrFieldAlreadyBound
	ErrInvalidPredicate       = internal.ErrInvalidPredicate
	ErrNotOrdered             = internal.ErrNotOrdered
	ErrNotContainer           = internal.ErrNotContainer
	ErrExecutor               = internal.ErrExecutor
	ErrExecutorNotStarted     = internal.ErrExecutorNotStarted
	ErrExecutorAlreadyStarted = internal.ErrExecutorAlreadyStarted
	ErrExecutorTerminated     = internal.ErrExecutorTerminated
)
