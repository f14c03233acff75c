package gridfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/taskgridgo/internal/ctxlog"
)

// fileRoot decodes the top-level blocks of one grid file. There is no
// remain body: anything other than task blocks is rejected with the
// decoder's own diagnostics.
type fileRoot struct {
	Tasks []*taskBlock `hcl:"task,block"`
}

type taskBlock struct {
	Name string         `hcl:"name,label"`
	Fn   string         `hcl:"fn"`
	Args hcl.Expression `hcl:"args,optional"`
}

// Load reads the grid at path, which may be a single .hcl file or a
// directory walked recursively for .hcl files in lexical order.
func Load(ctx context.Context, path string) (*Grid, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findHCLFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found at %s", path)
	}
	logger.Debug("Discovered grid files.", "count", len(files))

	grid := NewGrid()
	parser := hclparse.NewParser()
	seen := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse grid file %s: %w", file, diags)
		}
		if err := appendTasks(grid, hclFile.Body, seen, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("Grid loading complete.", "tasks", len(grid.Tasks))
	return grid, nil
}

// ParseSource decodes grid source from memory, e.g. a REPL buffer. The
// filename only labels diagnostics.
func ParseSource(src []byte, filename string) (*Grid, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	grid := NewGrid()
	if err := appendTasks(grid, hclFile.Body, make(map[string]string), filename); err != nil {
		return nil, err
	}
	return grid, nil
}

// appendTasks decodes every task block in body into the grid, enforcing
// unique names across the whole load.
func appendTasks(grid *Grid, body hcl.Body, seen map[string]string, file string) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode grid file %s: %w", file, diags)
	}

	for _, block := range root.Tasks {
		if prev, dup := seen[block.Name]; dup {
			return fmt.Errorf("duplicate task name %q in %s (first declared in %s)", block.Name, file, prev)
		}
		seen[block.Name] = file

		args, err := splitArgs(block.Args)
		if err != nil {
			return fmt.Errorf("task %q in %s: %w", block.Name, file, err)
		}

		grid.Tasks = append(grid.Tasks, &Task{
			Name: block.Name,
			Fn:   block.Fn,
			Args: args,
		})
	}
	return nil
}

// splitArgs unwraps the args attribute into its element expressions. An
// omitted attribute means a zero-argument task.
func splitArgs(expr hcl.Expression) ([]hcl.Expression, error) {
	if !exprDefined(expr) {
		return nil, nil
	}
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("args must be a list of expressions: %w", diags)
	}
	return exprs, nil
}

// exprDefined checks whether an expression was actually present in the
// source. The decoder populates omitted optional attributes with
// zero-width placeholder expressions, so a nil check is insufficient; a
// real attribute occupies bytes in the file.
func exprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

// findHCLFiles resolves path into a flat, lexically ordered list of .hcl
// files.
func findHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing grid path %s: %w", path, err)
	}

	if !info.IsDir() {
		if filepath.Ext(path) != ".hcl" {
			return nil, fmt.Errorf("grid file %s is not a .hcl file", path)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".hcl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
