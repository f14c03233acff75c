package scheduler

import "fmt"

// Result evaluates task id if needed and returns its result as type T.
// It fails with a wrapped ErrTaskNotFound, ErrCyclicDependency, or any
// error raised while evaluating the task's dependency chain; when
// evaluation succeeds but the result is not a T, it fails with a wrapped
// ErrTypeMismatch (or ErrNoValue for a computation that returns nothing).
// A correctly typed call after a mismatched one still succeeds.
func Result[T any](s *Scheduler, id TaskID) (T, error) {
	v, err := s.resolve(id)
	if err != nil {
		var zero T
		return zero, err
	}
	out, err := As[T](v)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("task %d: %w", id, err)
	}
	return out, nil
}

// ResultValue evaluates task id if needed and returns its type-erased
// result. It exists for callers that cannot name the result type
// statically, such as interactive shells; library code should prefer
// Result.
func (s *Scheduler) ResultValue(id TaskID) (Value, error) {
	return s.resolve(id)
}

// ExecuteAll eagerly evaluates every registered task in id order. Tasks
// already evaluated, including those forced earlier in the same call as
// dependencies of other tasks, are skipped. After a successful return
// every task is evaluated exactly once; the first error stops the sweep.
func (s *Scheduler) ExecuteAll() error {
	for id := range s.tasks {
		if s.tasks[id].state == stateEvaluated {
			continue
		}
		if _, err := s.resolve(TaskID(id)); err != nil {
			return err
		}
	}
	return nil
}
