package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/app"
	"github.com/specialistvlad/stagegrid/internal/hcl_adapter"
	"github.com/specialistvlad/stagegrid/internal/registry"
	"github.com/specialistvlad/stagegrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// harnessResult holds the outcome of a pipeline run.
type harnessResult struct {
	App  *app.App
	Logs string
	Err  error
}

// runPipeline writes files to a temporary directory, points an App at
// "pipeline.hcl" inside it and runs the given number of ticks as fast as
// possible. With no modules the core node set is used.
func runPipeline(t *testing.T, files map[string]string, ticks int, modules ...registry.Module) *harnessResult {
	t.Helper()

	root := testutil.WriteFiles(t, files)
	cfg, err := app.NewConfig(app.Config{
		PipelinePath: filepath.Join(root, "pipeline.hcl"),
		Ticks:        ticks,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	logs := &testutil.SafeBuffer{}
	a := app.NewApp(logs, cfg, hcl_adapter.NewLoader(), modules...)
	runErr := a.Run(context.Background())

	if os.Getenv("STAGEGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
	return &harnessResult{App: a, Logs: logs.String(), Err: runErr}
}
