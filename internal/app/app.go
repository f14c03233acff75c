package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/taskgridgo/internal/ctxlog"
	"github.com/vk/taskgridgo/internal/gridfile"
	"github.com/vk/taskgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	grid     *gridfile.Grid
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registry, with the grid model already loaded. A failure to load the
// grid is a fatal startup error and panics; the CLI entrypoint recovers
// it into a clean exit.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All builtin modules registered.", "count", len(modules))

	var grid *gridfile.Grid
	if cfg.GridPath != "" {
		var err error
		grid, err = gridfile.Load(ctx, cfg.GridPath)
		if err != nil {
			panic(fmt.Errorf("failed to load grid: %w", err))
		}
		logger.Debug("Grid model loaded.", "tasks", len(grid.Tasks))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
		grid:     grid,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
