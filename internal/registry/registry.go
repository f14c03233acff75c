package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
)

// Module is the interface all builtin modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Handler holds the compiled Go computation behind a builtin name. Fn is
// handed to the scheduler unchanged, so it must satisfy the scheduler's
// registration contract: a non-variadic func of at most two parameters.
type Handler struct {
	Fn any
}

// Type returns the reflect type of the handler's computation.
func (h *Handler) Type() reflect.Type {
	return reflect.TypeOf(h.Fn)
}

// Registry holds all registered builtin handlers for a single
// application instance.
type Registry struct {
	handlers map[string]*Handler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]*Handler),
	}
}

// Register registers a builtin computation under the given name.
func (r *Registry) Register(name string, handler *Handler) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("builtin with name '%s' already registered", name))
	}
	if handler == nil || handler.Fn == nil {
		panic(fmt.Sprintf("builtin '%s' registered without a computation", name))
	}
	if reflect.TypeOf(handler.Fn).Kind() != reflect.Func {
		panic(fmt.Sprintf("builtin '%s' must be a func, got %T", name, handler.Fn))
	}
	slog.Debug("Registering builtin handler.", "name", name)
	r.handlers[name] = handler
}

// Lookup returns the handler registered under name, or false when the
// name is unknown.
func (r *Registry) Lookup(name string) (*Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns all registered builtin names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
