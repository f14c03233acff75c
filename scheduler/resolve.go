package scheduler

import (
	"fmt"
	"reflect"
)

// resolve produces the result of the given task, evaluating it and any
// of its transitive dependencies that have not run yet. Already-evaluated
// tasks return their cached result with no side effects.
func (s *Scheduler) resolve(id TaskID) (Value, error) {
	if id < 0 || int(id) >= len(s.tasks) {
		return Value{}, fmt.Errorf("task %d: %w (%d tasks registered)", id, ErrTaskNotFound, len(s.tasks))
	}
	t := s.tasks[id]

	switch t.state {
	case stateEvaluated:
		return t.result, nil
	case stateInProgress:
		// Resolution re-entered a task that is still being resolved
		// higher up the call stack.
		return Value{}, fmt.Errorf("task %d: %w", id, ErrCyclicDependency)
	}

	if !t.fn.IsValid() {
		return Value{}, fmt.Errorf("task %d: %w", id, ErrMissingComputation)
	}

	t.state = stateInProgress
	// A failed attempt returns the task to unevaluated so the caller may
	// retry it; a retry must not be mistaken for a cycle.
	defer func() {
		if t.state == stateInProgress {
			t.state = stateUnevaluated
		}
	}()

	// Inputs resolve strictly left to right, in declared order. The first
	// argument's whole sub-graph settles before the second is touched.
	callArgs := make([]reflect.Value, len(t.bindings))
	for pos, b := range t.bindings {
		arg, err := s.resolveBinding(t.id, pos, b)
		if err != nil {
			return Value{}, err
		}
		callArgs[pos] = arg
	}

	result, err := invoke(t.fn, callArgs)
	if err != nil {
		return Value{}, fmt.Errorf("task %d: computation failed: %w", t.id, err)
	}

	t.result = result
	t.state = stateEvaluated
	return t.result, nil
}

// resolveBinding turns one argument slot into a call argument. Literals
// pass through unchanged; references trigger resolution of their target
// and then require the produced value to be retrievable as the declared
// type.
func (s *Scheduler) resolveBinding(id TaskID, pos int, b binding) (reflect.Value, error) {
	if !b.ref {
		return b.value, nil
	}

	dep, err := s.resolve(b.task)
	if err != nil {
		return reflect.Value{}, err
	}

	arg, err := dep.asType(b.want)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("task %d: argument %d from task %d: %w", id, pos, b.task, err)
	}
	return arg, nil
}

// invoke calls the computation with its resolved arguments and captures
// the outcome. A computation with no value-result produces an empty
// container; a non-nil trailing error fails the evaluation.
func invoke(fn reflect.Value, args []reflect.Value) (Value, error) {
	fnType := fn.Type()
	out := fn.Call(args)

	switch fnType.NumOut() {
	case 0:
		return Value{}, nil
	case 1:
		if fnType.Out(0) == errorType {
			if !out[0].IsNil() {
				return Value{}, out[0].Interface().(error)
			}
			return Value{}, nil
		}
		return newValue(out[0].Interface()), nil
	default:
		if !out[1].IsNil() {
			return Value{}, out[1].Interface().(error)
		}
		return newValue(out[0].Interface()), nil
	}
}
