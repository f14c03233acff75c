package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/peterh/liner"

	"github.com/vk/taskgridgo/internal/builder"
	"github.com/vk/taskgridgo/internal/gridfile"
	"github.com/vk/taskgridgo/internal/registry"
)

const (
	promptMain  = "taskgrid> "
	promptCont  = "    ...> "
	historyFile = ".taskgridgo_history"
)

const banner = `taskgridgo interactive session. Type task blocks in HCL, or :help.`

// REPL is one interactive session over a live scheduler.
type REPL struct {
	outW   io.Writer
	reg    *registry.Registry
	logger *slog.Logger
	b      *builder.Builder
}

// New returns a session with an empty graph.
func New(outW io.Writer, reg *registry.Registry, logger *slog.Logger) *REPL {
	return &REPL{
		outW:   outW,
		reg:    reg,
		logger: logger,
		b:      builder.New(reg),
	}
}

// Preload seeds the session's graph from an already-loaded grid, used
// when the CLI starts a session over an existing grid path.
func (r *REPL) Preload(ctx context.Context, grid *gridfile.Grid) error {
	return r.b.AddGrid(ctx, grid)
}

// Run drives the session until :quit or EOF. Evaluation and build errors
// are printed and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	sessionID := ulid.Make().String()
	r.logger.Debug("REPL session started.", "session_id", sessionID)
	fmt.Fprintln(r.outW, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var buf strings.Builder
	for {
		prompt := promptMain
		if buf.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.outW)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			buf.Reset()
			continue
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)

		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				ln.AppendHistory(trimmed)
				if quit := r.command(ctx, trimmed); quit {
					return nil
				}
				continue
			}
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		// Parse-probe: reparse the whole buffer after every line. A
		// successful parse flushes the buffer to the builder; a blank
		// line gives up and reports what the parser is unhappy about.
		src := buf.String()
		grid, perr := gridfile.ParseSource([]byte(src), "repl")
		if perr == nil {
			buf.Reset()
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
			if len(grid.Tasks) == 0 {
				continue
			}
			if err := r.b.AddGrid(ctx, grid); err != nil {
				fmt.Fprintf(r.outW, "error: %v\n", err)
				continue
			}
			for _, task := range grid.Tasks {
				id, _ := r.b.ID(task.Name)
				fmt.Fprintf(r.outW, "registered task %q (id %d)\n", task.Name, int(id))
			}
			continue
		}
		if trimmed == "" {
			buf.Reset()
			fmt.Fprintf(r.outW, "error: %v\n", perr)
		}
	}
}

// command dispatches one colon command and reports whether the session
// should end.
func (r *REPL) command(ctx context.Context, input string) bool {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":quit", ":q":
		return true

	case ":help":
		fmt.Fprint(r.outW, `Commands:
  :help         show this help
  :tasks        list registered tasks and their state
  :run          eagerly evaluate every registered task
  :eval <name>  resolve one task and print its value
  :load <path>  load grid file(s) into the session
  :reset        discard the graph and start fresh
  :quit, :q     end the session

Anything else is HCL: task "<name>" { fn = "..."  args = [...] }
`)

	case ":tasks":
		r.printTasks()

	case ":run":
		if err := r.b.Scheduler().ExecuteAll(); err != nil {
			fmt.Fprintf(r.outW, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(r.outW, "evaluated %d task(s)\n", r.b.Scheduler().Size())

	case ":eval":
		if arg == "" {
			fmt.Fprintln(r.outW, "usage: :eval <name>")
			return false
		}
		r.eval(arg)

	case ":load":
		if arg == "" {
			fmt.Fprintln(r.outW, "usage: :load <path>")
			return false
		}
		grid, err := gridfile.Load(ctx, arg)
		if err == nil {
			err = r.b.AddGrid(ctx, grid)
		}
		if err != nil {
			fmt.Fprintf(r.outW, "error: %v\n", err)
			return false
		}
		fmt.Fprintf(r.outW, "loaded %d task(s)\n", len(grid.Tasks))

	case ":reset":
		r.b = builder.New(r.reg)
		fmt.Fprintln(r.outW, "graph reset")

	default:
		fmt.Fprintf(r.outW, "unknown command %q. Type :help.\n", cmd)
	}
	return false
}

// eval resolves one task by name and prints its value. A failure leaves
// the task unevaluated, so the same name may be evaluated again.
func (r *REPL) eval(name string) {
	id, ok := r.b.ID(name)
	if !ok {
		fmt.Fprintf(r.outW, "error: no task named %q\n", name)
		return
	}
	v, err := r.b.Scheduler().ResultValue(id)
	if err != nil {
		fmt.Fprintf(r.outW, "error: %v\n", err)
		return
	}
	if v.HasValue() {
		fmt.Fprintf(r.outW, "%s = %v\n", name, v.Interface())
	} else {
		fmt.Fprintf(r.outW, "%s = (no value)\n", name)
	}
}

// printTasks renders the session's graph, showing cached values only for
// tasks that have already been evaluated so the listing never forces
// anything.
func (r *REPL) printTasks() {
	names := r.b.Names()
	if len(names) == 0 {
		fmt.Fprintln(r.outW, "no tasks registered")
		return
	}
	sched := r.b.Scheduler()
	for i, name := range names {
		id, _ := r.b.ID(name)
		if !sched.Evaluated(id) {
			fmt.Fprintf(r.outW, "%3d  %-20s pending\n", i, name)
			continue
		}
		v, err := sched.ResultValue(id)
		switch {
		case err != nil:
			fmt.Fprintf(r.outW, "%3d  %-20s error: %v\n", i, name, err)
		case v.HasValue():
			fmt.Fprintf(r.outW, "%3d  %-20s evaluated  %v\n", i, name, v.Interface())
		default:
			fmt.Fprintf(r.outW, "%3d  %-20s evaluated  (no value)\n", i, name)
		}
	}
}
