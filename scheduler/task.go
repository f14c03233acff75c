package scheduler

import "reflect"

// evalState tracks a task through evaluation. stateEvaluated is terminal:
// once reached, the cached result never changes and the computation never
// runs again. stateInProgress exists only inside an active resolve call
// stack and is how a cycle is recognized.
type evalState uint8

const (
	stateUnevaluated evalState = iota
	stateInProgress
	stateEvaluated
)

// task is one registered computation. Tasks live in the scheduler's
// index-addressed arena and are never removed or structurally changed
// after registration; only state and result transition, exactly once.
type task struct {
	id       TaskID
	fn       reflect.Value
	bindings []binding
	state    evalState
	result   Value
}

// binding is one argument slot, fixed at registration. Either a captured
// literal or a reference to another task's result with a declared type.
type binding struct {
	ref   bool
	task  TaskID        // referenced task, when ref
	want  reflect.Type  // declared result type, when ref
	value reflect.Value // captured literal, when not ref
}
