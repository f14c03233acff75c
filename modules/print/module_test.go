package print

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/registry"
)

func TestRegister(t *testing.T) {
	out := &bytes.Buffer{}
	r := registry.New()
	(&Module{Out: out}).Register(r)

	handler, ok := r.Lookup("print")
	require.True(t, ok)

	fn := handler.Fn.(func(any))
	fn(10.0)
	fn("done")

	// Each printed value is one "= <value>" line.
	assert.Equal(t, "= 10\n= done\n", out.String())
}
