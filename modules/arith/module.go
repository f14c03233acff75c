package arith

import (
	"fmt"
	"math"

	"github.com/vk/taskgridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Const passes its argument through. It anchors literals that other
// tasks want to reference.
func Const(x float64) float64 {
	return x
}

// Add returns a + b.
func Add(a, b float64) float64 {
	return a + b
}

// Sub returns a - b.
func Sub(a, b float64) float64 {
	return a - b
}

// Mul returns a * b.
func Mul(a, b float64) float64 {
	return a * b
}

// Neg returns -x.
func Neg(x float64) float64 {
	return -x
}

// Div returns a / b, failing on a zero divisor.
func Div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("division by zero")
	}
	return a / b, nil
}

// Sqrt returns the square root of x, failing on negative input.
func Sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, fmt.Errorf("square root of negative number %g", x)
	}
	return math.Sqrt(x), nil
}

// Register registers the arithmetic builtins.
func (m *Module) Register(r *registry.Registry) {
	r.Register("const", &registry.Handler{Fn: Const})
	r.Register("add", &registry.Handler{Fn: Add})
	r.Register("sub", &registry.Handler{Fn: Sub})
	r.Register("mul", &registry.Handler{Fn: Mul})
	r.Register("neg", &registry.Handler{Fn: Neg})
	r.Register("div", &registry.Handler{Fn: Div})
	r.Register("sqrt", &registry.Handler{Fn: Sqrt})
}
