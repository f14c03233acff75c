package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/testutil"
)

// TestErrorHandling_InvalidHCLIsRejected validates that an unparseable
// grid file fails the run during startup with the parser's diagnostics.
func TestErrorHandling_InvalidHCLIsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"main.hcl": `
		task "broken" {
			fn = "const"
	`}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	require.ErrorContains(t, result.Err, "failed to parse")
}

func TestErrorHandling_UnknownBuiltin(t *testing.T) {
	t.Parallel()

	files := map[string]string{"main.hcl": `
		task "a" {
			fn = "frobnicate"
		}
	`}

	result := testutil.RunIntegrationTest(t, files)

	require.Error(t, result.Err)
	require.ErrorContains(t, result.Err, "failed to build task graph")
	require.ErrorContains(t, result.Err, `unknown builtin "frobnicate"`)
}

func TestErrorHandling_WrongArgumentCount(t *testing.T) {
	t.Parallel()

	files := map[string]string{"main.hcl": `
		task "a" {
			fn   = "add"
			args = [1, 2, 3]
		}
	`}

	result := testutil.RunIntegrationTest(t, files)

	require.Error(t, result.Err)
	require.ErrorContains(t, result.Err, "takes 2 arguments, got 3")
}

func TestErrorHandling_DuplicateTaskNames(t *testing.T) {
	t.Parallel()

	// Duplicate names across separate files are caught at load time.
	files := map[string]string{
		"one.hcl": "task \"dup\" {\n  fn   = \"const\"\n  args = [1]\n}\n",
		"two.hcl": "task \"dup\" {\n  fn   = \"const\"\n  args = [2]\n}\n",
	}

	result := testutil.RunIntegrationTest(t, files)

	require.Error(t, result.Err)
	require.ErrorContains(t, result.Err, `duplicate task name "dup"`)
}
