package env_vars

import (
	"os"

	"github.com/vk/taskgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Get returns the value of the named environment variable, or an empty
// string when the variable is unset.
func Get(name string) string {
	return os.Getenv(name)
}

// Register registers the environment builtins.
func (m *Module) Register(r *registry.Registry) {
	r.Register("env", &registry.Handler{Fn: Get})
}
