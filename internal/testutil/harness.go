package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/app"
	"github.com/vk/taskgridgo/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run. Output
// carries everything the app wrote: logs and builtin output interleaved.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunIntegrationTest writes the given grid files into a temporary
// directory and runs the whole application over it: load, build,
// ExecuteAll.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithConfig(t, files, app.Config{}, modules...)
}

// RunIntegrationTestWithConfig is RunIntegrationTest with control over
// the app configuration. GridPath is always overwritten with the
// temporary directory holding the files; log level defaults to debug in
// text format so assertions can grep the output.
func RunIntegrationTestWithConfig(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg.GridPath = tmpDir
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	result := &HarnessResult{}

	// NewApp panics on startup failures such as unparseable grids; the
	// harness reports that as an error the same way the CLI edge does.
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked: %v", r)
			}
		}()
		result.App = app.NewApp(out, &cfg, modules...)
		result.Err = result.App.Run(context.Background())
	}()

	result.Output = out.String()
	return result
}
