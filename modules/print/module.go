package print

import (
	"fmt"
	"io"
	"os"

	"github.com/vk/taskgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package. Out
// receives everything the print builtin writes; it defaults to stdout.
type Module struct {
	Out io.Writer
}

// Register registers the print builtin. The computation has no return
// value, so a print task produces an empty result.
func (m *Module) Register(r *registry.Registry) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	r.Register("print", &registry.Handler{Fn: func(v any) {
		fmt.Fprintf(out, "= %v\n", v)
	}})
}
