package scheduler

import "errors"

// Sentinel errors reported by evaluation and retrieval. They are always
// returned wrapped with task context, so match them with errors.Is.
var (
	// ErrTaskNotFound is returned when a task id does not correspond to
	// any registered task.
	ErrTaskNotFound = errors.New("no such task")

	// ErrCyclicDependency is returned when resolving a task re-enters
	// that same task while its resolution is still in progress.
	ErrCyclicDependency = errors.New("cyclic dependency detected")

	// ErrTypeMismatch is returned when a typed retrieval does not match
	// the concrete type actually produced by a task.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNoValue is returned when a typed retrieval targets an empty
	// result, such as the result of a computation with no return value.
	ErrNoValue = errors.New("no value stored")

	// ErrMissingComputation is returned when a task record has no bound
	// computation. It is unreachable through the public API.
	ErrMissingComputation = errors.New("no computation bound")
)
