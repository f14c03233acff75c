package scheduler

import (
	"fmt"
	"reflect"
)

// Value is a type-erased container holding exactly one value of an
// arbitrary concrete type, or nothing. The zero Value is empty. Copies of
// a Value share access to the same underlying data; typed retrieval hands
// out that data, not a fresh copy of the container's storage.
type Value struct {
	data    any
	present bool
}

// newValue wraps v. The dynamic type of v becomes the only type the
// value can later be retrieved as.
func newValue(v any) Value {
	return Value{data: v, present: true}
}

// HasValue reports whether the container holds a value. A task that ran
// a computation with no return value produces an empty container.
func (v Value) HasValue() bool {
	return v.present
}

// Interface returns the raw stored value, or nil when the container is
// empty. Callers that know the concrete type should prefer As.
func (v Value) Interface() any {
	return v.data
}

// asType retrieves the stored value for use as a reflect argument of the
// given type. It mirrors As, but checks assignability rather than doing a
// type assertion so the result can be passed straight to a function call.
func (v Value) asType(want reflect.Type) (reflect.Value, error) {
	if !v.present {
		return reflect.Value{}, ErrNoValue
	}
	if v.data == nil {
		if want.Kind() == reflect.Interface {
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: got <nil>, want %s", ErrTypeMismatch, want)
	}
	rv := reflect.ValueOf(v.data)
	if !rv.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("%w: got %s, want %s", ErrTypeMismatch, rv.Type(), want)
	}
	return rv, nil
}

// As retrieves the stored value as type T. It fails with ErrNoValue when
// the container is empty and with ErrTypeMismatch when the stored
// concrete type is not T. A failed retrieval leaves the container intact.
func As[T any](v Value) (T, error) {
	var zero T
	if !v.present {
		return zero, ErrNoValue
	}
	out, ok := v.data.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %s", ErrTypeMismatch, v.data, reflect.TypeOf((*T)(nil)).Elem())
	}
	return out, nil
}
