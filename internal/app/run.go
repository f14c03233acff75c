package app

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/vk/taskgridgo/internal/builder"
	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/repl"
	"github.com/vk/taskgridgo/scheduler"
)

// Run executes the main application logic: an interactive session, a
// single-target resolution, or an eager run of the whole grid.
func (a *App) Run(ctx context.Context) error {
	runID := ulid.Make().String()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	if a.config.Interactive {
		session := repl.New(a.outW, a.registry, logger)
		if a.grid != nil {
			if err := session.Preload(ctx, a.grid); err != nil {
				return fmt.Errorf("failed to build task graph: %w", err)
			}
		}
		return session.Run(ctx)
	}

	logger.Debug("Building task graph from grid model...")
	b, err := builder.Build(ctx, a.grid, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build task graph: %w", err)
	}
	sched := b.Scheduler()
	logger.Debug("Task graph built.", "task_count", sched.Size())

	if sched.Size() == 0 {
		logger.Warn("No tasks found in grid, execution not required.")
		return nil
	}

	if a.config.Target != "" {
		return a.runTarget(ctx, b)
	}

	logger.Info("🚀 Starting evaluation...", "tasks", sched.Size())
	if err := sched.ExecuteAll(); err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	logger.Info("🏁 Evaluation finished.", "evaluated", sched.Size())
	return nil
}

// runTarget lazily resolves a single named task. Tasks outside the
// target's dependency chain stay unevaluated.
func (a *App) runTarget(ctx context.Context, b *builder.Builder) error {
	logger := ctxlog.FromContext(ctx)
	sched := b.Scheduler()
	target := a.config.Target

	id, ok := b.ID(target)
	if !ok {
		return fmt.Errorf("target task %q is not defined in the grid", target)
	}

	logger.Info("🚀 Resolving target task...", "target", target)
	v, err := sched.ResultValue(id)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	evaluated := 0
	for i := 0; i < sched.Size(); i++ {
		if sched.Evaluated(scheduler.TaskID(i)) {
			evaluated++
		}
	}
	logger.Info("🏁 Target resolved.", "evaluated", evaluated, "registered", sched.Size())

	if v.HasValue() {
		fmt.Fprintf(a.outW, "%s = %v\n", target, v.Interface())
	} else {
		fmt.Fprintf(a.outW, "%s = (no value)\n", target)
	}
	return nil
}
