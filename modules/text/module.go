package text

import (
	"strings"

	"github.com/vk/taskgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Concat returns a followed by b.
func Concat(a, b string) string {
	return a + b
}

// Upper returns s with all letters upper-cased.
func Upper(s string) string {
	return strings.ToUpper(s)
}

// Lower returns s with all letters lower-cased.
func Lower(s string) string {
	return strings.ToLower(s)
}

// Register registers the text builtins.
func (m *Module) Register(r *registry.Registry) {
	r.Register("concat", &registry.Handler{Fn: Concat})
	r.Register("upper", &registry.Handler{Fn: Upper})
	r.Register("lower", &registry.Handler{Fn: Lower})
}
