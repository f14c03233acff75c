package scheduler

import "reflect"

// Ref is a typed reference to the eventual result of another task. It is
// a non-owning lookup key, not a handle into task storage: it stays valid
// even when it names an id that has not been registered yet, and the id
// is only checked when the reference is resolved during evaluation.
//
// A Ref is produced by FutureResult and is meaningful only as an argument
// to Add.
type Ref[T any] struct {
	id TaskID
}

// FutureResult returns a reference to the result of task id, declared to
// be of type T. It is pure: neither the id nor the type declaration is
// validated here. A wrong declaration surfaces as a type mismatch when
// the reference is resolved.
func FutureResult[T any](id TaskID) Ref[T] {
	return Ref[T]{id: id}
}

// taskRef is the erased view of a Ref that Add uses to tell references
// apart from literal arguments.
type taskRef interface {
	refID() TaskID
	refType() reflect.Type
}

func (r Ref[T]) refID() TaskID { return r.id }

func (r Ref[T]) refType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
