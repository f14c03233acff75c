package integration_tests

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/app"
	"github.com/vk/taskgridgo/internal/registry"
	"github.com/vk/taskgridgo/internal/testutil"
	"github.com/vk/taskgridgo/modules/arith"
)

type lazySpyModule struct {
	unwantedCalls *atomic.Int64
}

func (m *lazySpyModule) Register(r *registry.Registry) {
	(&arith.Module{}).Register(r)
	r.Register("unwanted", &registry.Handler{Fn: func() float64 {
		m.unwantedCalls.Add(1)
		return 0
	}})
}

// TestCoreExecution_TargetIsLazy validates that resolving a single target
// task never invokes tasks outside its dependency chain.
func TestCoreExecution_TargetIsLazy(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	gridHCL := `
		task "base" {
			fn   = "const"
			args = [3]
		}

		task "wanted" {
			fn   = "mul"
			args = [task.base, task.base]
		}

		task "ignored" {
			fn = "unwanted"
		}
	`
	files := map[string]string{"main.hcl": gridHCL}
	spy := &lazySpyModule{unwantedCalls: &atomic.Int64{}}

	// --- Act ---
	result := testutil.RunIntegrationTestWithConfig(t, files, app.Config{Target: "wanted"}, spy)

	// --- Assert ---
	require.NoError(t, result.Err, "app.Run() returned an unexpected error")
	assert.Contains(t, result.Output, "wanted = 9")
	assert.Zero(t, spy.unwantedCalls.Load(), "a task outside the target's chain must never run")
}
