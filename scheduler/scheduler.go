package scheduler

import (
	"fmt"
	"reflect"
)

// TaskID identifies a registered task. Ids are assigned sequentially from
// zero in registration order and are stable for the lifetime of the
// Scheduler instance.
type TaskID int

// maxArity is the most arguments a computation may bind. A deliberate
// constraint carried over from the system this engine models.
const maxArity = 2

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Scheduler owns the task arena. All tasks, their bound literals, and
// their callables belong exclusively to the instance that registered
// them; references between tasks go through id lookup only.
type Scheduler struct {
	tasks []*task
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Add registers a computation together with its bound arguments and
// returns the new task's id. Nothing is evaluated: the callable runs the
// first time the task's result is needed.
//
// fn must be a non-variadic func taking at most two parameters and
// returning nothing, a single value, an error, or a value and an error.
// Each argument is independently either a literal, captured now, or a Ref
// produced by FutureResult. Arguments bind to parameters positionally in
// the order supplied. A reference may name a task that has not been
// registered yet; the id is checked only at resolution.
//
// Misuse of the registration contract is a programmer error and panics.
func (s *Scheduler) Add(fn any, args ...any) TaskID {
	if fn == nil {
		panic("scheduler: Add requires a computation, got nil")
	}
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func {
		panic(fmt.Sprintf("scheduler: computation must be a func, got %T", fn))
	}
	fnType := fnVal.Type()
	if fnType.IsVariadic() {
		panic(fmt.Sprintf("scheduler: variadic computations are not supported, got %s", fnType))
	}
	if len(args) > maxArity {
		panic(fmt.Sprintf("scheduler: at most %d arguments may be bound, got %d", maxArity, len(args)))
	}
	if fnType.NumIn() != len(args) {
		panic(fmt.Sprintf("scheduler: computation %s takes %d parameters, but %d arguments were bound", fnType, fnType.NumIn(), len(args)))
	}
	switch fnType.NumOut() {
	case 0, 1:
	case 2:
		if fnType.Out(1) != errorType {
			panic(fmt.Sprintf("scheduler: second return value of %s must be error", fnType))
		}
	default:
		panic(fmt.Sprintf("scheduler: computation %s returns too many values", fnType))
	}

	t := &task{id: TaskID(len(s.tasks)), fn: fnVal}

	// Exactly three binding shapes: no arguments, one, or two.
	switch len(args) {
	case 1:
		t.bindings = []binding{bindArg(fnType, 0, args[0])}
	case 2:
		t.bindings = []binding{bindArg(fnType, 0, args[0]), bindArg(fnType, 1, args[1])}
	}

	s.tasks = append(s.tasks, t)
	return t.id
}

// bindArg fixes one argument slot against the matching parameter of fn.
func bindArg(fnType reflect.Type, pos int, arg any) binding {
	param := fnType.In(pos)

	if ref, ok := arg.(taskRef); ok {
		want := ref.refType()
		if !want.AssignableTo(param) {
			panic(fmt.Sprintf("scheduler: argument %d: a result declared as %s cannot be passed to parameter type %s", pos, want, param))
		}
		return binding{ref: true, task: ref.refID(), want: want}
	}

	if arg == nil {
		switch param.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return binding{value: reflect.Zero(param)}
		}
		panic(fmt.Sprintf("scheduler: argument %d: untyped nil is not assignable to parameter type %s", pos, param))
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(param) {
		panic(fmt.Sprintf("scheduler: argument %d: %T is not assignable to parameter type %s", pos, arg, param))
	}
	return binding{value: v}
}

// Size returns the number of registered tasks.
func (s *Scheduler) Size() int {
	return len(s.tasks)
}

// Evaluated reports whether the given task has been evaluated. Unknown
// ids report false.
func (s *Scheduler) Evaluated(id TaskID) bool {
	if id < 0 || int(id) >= len(s.tasks) {
		return false
	}
	return s.tasks[id].state == stateEvaluated
}
