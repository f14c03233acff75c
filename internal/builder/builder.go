package builder

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/gridfile"
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/scheduler"
)

// Builder incrementally translates grid tasks into registrations on a
// single scheduler, keeping the name-to-id index. Grids may be added in
// batches; ids continue from the current scheduler size, so an
// interactive session can grow the graph one buffer at a time.
type Builder struct {
	sched *scheduler.Scheduler
	reg   *registry.Registry
	ids   map[string]scheduler.TaskID
	names []string
}

// New returns a Builder over a fresh scheduler, resolving builtin names
// through reg.
func New(reg *registry.Registry) *Builder {
	return &Builder{
		sched: scheduler.New(),
		reg:   reg,
		ids:   make(map[string]scheduler.TaskID),
	}
}

// Build is a convenience wrapper translating one grid in full.
func Build(ctx context.Context, grid *gridfile.Grid, reg *registry.Registry) (*Builder, error) {
	b := New(reg)
	if err := b.AddGrid(ctx, grid); err != nil {
		return nil, err
	}
	return b, nil
}

// AddGrid registers every task in the grid with the scheduler. Ids are
// assigned by declaration order before any task is translated, so
// arguments may reference tasks declared later in the same batch. The
// batch is transactional: nothing is committed to the scheduler or the
// name index until every task in it has translated successfully, so a
// failed AddGrid leaves the builder exactly as it was.
func (b *Builder) AddGrid(ctx context.Context, grid *gridfile.Grid) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Translating grid into scheduler registrations.", "tasks", len(grid.Tasks))

	// First pass: stage ids so forward references within the batch
	// resolve by name. The staged index is thrown away on any error.
	staged := make(map[string]scheduler.TaskID, len(grid.Tasks))
	next := scheduler.TaskID(b.sched.Size())
	for _, task := range grid.Tasks {
		if _, exists := b.ids[task.Name]; exists {
			return fmt.Errorf("task %q is already defined", task.Name)
		}
		if _, exists := staged[task.Name]; exists {
			return fmt.Errorf("task %q is already defined", task.Name)
		}
		staged[task.Name] = next
		next++
	}

	lookupID := func(name string) (scheduler.TaskID, bool) {
		if id, ok := staged[name]; ok {
			return id, true
		}
		id, ok := b.ids[name]
		return id, ok
	}

	// Second pass: resolve builtins and classify arguments for the
	// whole batch before the first registration, so a bad task cannot
	// leave a half-registered batch behind.
	type registration struct {
		name string
		fn   string
		call any
		args []any
	}
	regs := make([]registration, 0, len(grid.Tasks))
	for _, task := range grid.Tasks {
		handler, ok := b.reg.Lookup(task.Fn)
		if !ok {
			return fmt.Errorf("task %q: unknown builtin %q (registered: %s)",
				task.Name, task.Fn, strings.Join(b.reg.Names(), ", "))
		}

		fnType := handler.Type()
		if fnType.NumIn() != len(task.Args) {
			return fmt.Errorf("task %q: builtin %q takes %d arguments, got %d",
				task.Name, task.Fn, fnType.NumIn(), len(task.Args))
		}

		args := make([]any, len(task.Args))
		for pos, expr := range task.Args {
			arg, err := b.translateArg(expr, fnType.In(pos), lookupID)
			if err != nil {
				return fmt.Errorf("task %q: argument %d: %w", task.Name, pos, err)
			}
			args[pos] = arg
		}

		regs = append(regs, registration{name: task.Name, fn: task.Fn, call: handler.Fn, args: args})
	}

	// Commit. Registration cannot fail past this point.
	for _, reg := range regs {
		id := b.sched.Add(reg.call, reg.args...)
		b.ids[reg.name] = id
		b.names = append(b.names, reg.name)
		logger.Debug("Registered task.", "name", reg.name, "fn", reg.fn, "id", int(id))
	}

	return nil
}

// Scheduler returns the underlying scheduler.
func (b *Builder) Scheduler() *scheduler.Scheduler {
	return b.sched
}

// ID returns the task id registered under name.
func (b *Builder) ID(name string) (scheduler.TaskID, bool) {
	id, ok := b.ids[name]
	return id, ok
}

// Name returns the name of the task with the given id, or an empty
// string for an unknown id.
func (b *Builder) Name(id scheduler.TaskID) string {
	if id < 0 || int(id) >= len(b.names) {
		return ""
	}
	return b.names[id]
}

// Names returns all task names in declaration order, which is also id
// order.
func (b *Builder) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// refForParam produces a typed scheduler reference matching the builtin
// parameter the reference will feed. The closed set of parameter types
// here is the builtin author's contract; anything else is rejected at
// build time.
func refForParam(id scheduler.TaskID, param reflect.Type) (any, error) {
	switch param.Kind() {
	case reflect.Float64:
		return scheduler.FutureResult[float64](id), nil
	case reflect.Int:
		return scheduler.FutureResult[int](id), nil
	case reflect.String:
		return scheduler.FutureResult[string](id), nil
	case reflect.Bool:
		return scheduler.FutureResult[bool](id), nil
	case reflect.Interface:
		if param.NumMethod() == 0 {
			return scheduler.FutureResult[any](id), nil
		}
	}
	return nil, fmt.Errorf("builtin parameter type %s cannot take a task reference", param)
}
