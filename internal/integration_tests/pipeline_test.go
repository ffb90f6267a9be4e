package integration_tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPipeline_TextureChainAccumulatesPasses validates that a texture flows
// through a chain of processors in order, each adding its own pass.
func TestPipeline_TextureChainAccumulatesPasses(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	fxPath := filepath.Join(t.TempDir(), "grade.fx")
	require.NoError(t, os.WriteFile(fxPath, []byte("// grade"), 0644))
	files := map[string]string{
		"pipeline.hcl": fmt.Sprintf(`
node "CameraNode" "cam" {
  config {
    device_id = "deck"
  }
}

node "Stitch" "stitch" {}

node "EffectNode" "grade" {
  config {
    effect_path = %q
    mix         = 0.5
  }
}

connect {
  from = "cam.visual_out"
  to   = "stitch.video_in"
}

connect {
  from = "cam.visual_out"
  to   = "stitch.stmap"
}

connect {
  from = "stitch.video_out"
  to   = "grade.texture_in"
}
`, fxPath),
	}

	// --- Act ---
	result := runPipeline(t, files, 2)

	// --- Assert ---
	require.NoError(t, result.Err)
	out, err := result.App.Graph().Output(context.Background(), "grade")
	require.NoError(t, err)
	tex, ok := out["texture_out"].(port.Texture)
	require.True(t, ok, "grade should emit a texture")
	assert.Equal(t, "deck", tex.Source)
	assert.Equal(t, uint64(2), tex.Tick)
	assert.Equal(t, []string{"stmap:deck", "effect:" + fxPath + "@0.5"}, tex.Passes)
	testutil.AssertLogged(t, result.Logs, "🏁 Pipeline finished.", "ticks", "2", "ticks_with_failures", "0")
}

// TestPipeline_FailureSkipsOnlyDependents validates that a failing node skips
// the nodes downstream of it while independent branches keep running.
func TestPipeline_FailureSkipsOnlyDependents(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
node "CameraNode" "cam" {}

node "ShaderNode" "broken" {}

node "PrintNode" "after_broken" {}

node "Stitch" "stitch" {}

connect {
  from = "cam.visual_out"
  to   = "broken.texture_in"
}

connect {
  from = "broken.texture_out"
  to   = "after_broken.in"
}

connect {
  from = "cam.visual_out"
  to   = "stitch.video_in"
}
`,
	}

	// --- Act ---
	result := runPipeline(t, files, 1)

	// --- Assert ---
	require.NoError(t, result.Err, "node failures do not stop the run")
	ctx := context.Background()
	g := result.App.Graph()

	testCases := map[string]node.Status{
		"cam":          node.StatusCompleted,
		"broken":       node.StatusFailed,
		"after_broken": node.StatusSkipped,
		"stitch":       node.StatusCompleted,
	}
	for id, want := range testCases {
		got, err := g.Status(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, "status of %s", id)
	}

	nodeErr, err := g.Error(ctx, "broken")
	require.NoError(t, err)
	assert.ErrorIs(t, nodeErr, node.ErrEmptyPath)
	testutil.AssertLogged(t, result.Logs, "Skipping node, an upstream node did not complete.", "node", "after_broken", "upstream", "broken")
	testutil.AssertLogged(t, result.Logs, "🏁 Pipeline finished.", "ticks_with_failures", "1")
}

// TestPipeline_ModelAndStageShareScene validates that a stage import and an
// OBJ model load both land in the same scene store.
func TestPipeline_ModelAndStageShareScene(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	dir := t.TempDir()
	objPath := filepath.Join(dir, "tri.obj")
	files := map[string]string{
		"pipeline.hcl": fmt.Sprintf(`
node "ThreeDModelNode" "tri" {
  config {
    model_path = %q
  }
}

stage {
  path = "set.hcl"
}
`, objPath),
		"set.hcl": `
prim "set" {
  type = "Xform"

  prim "key_light" {
    type     = "Light"
    position = [0, 5, 0]
  }
}
`,
	}
	testutil.WriteFilesTo(t, dir, map[string]string{
		"tri.obj": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
	})

	// --- Act ---
	result := runPipeline(t, files, 1)

	// --- Assert ---
	require.NoError(t, result.Err)
	out, err := result.App.Graph().Output(context.Background(), "tri")
	require.NoError(t, err)
	ref, ok := out["visual_out"].(port.MeshRef)
	require.True(t, ok, "model should emit a mesh reference")
	require.Len(t, ref.EntityIDs, 1)
	require.Len(t, ref.MeshIDs, 1)

	stats := result.App.Scene().Stats()
	assert.Equal(t, 2, stats.Entities, "the model entity is released on shutdown, stage prims stay")
	assert.Equal(t, 1, stats.Meshes)

	_, ok = result.App.Scene().EntityID("/set/key_light")
	assert.True(t, ok, "stage prims are keyed by path")
	_, ok = result.App.Scene().EntityID(objPath)
	assert.False(t, ok)
}

// TestPipeline_CustomModules validates that an App built with explicit
// modules only knows those node types.
func TestPipeline_CustomModules(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
node "TestSource" "src" {}

node "TestPass" "a" {}

node "TestSink" "sink" {}

connect {
  from = "src.out"
  to   = "a.in"
}

connect {
  from = "a.out"
  to   = "sink.in"
}
`,
	}

	// --- Act ---
	result := runPipeline(t, files, 3, &testutil.TestNodesModule{})

	// --- Assert ---
	require.NoError(t, result.Err)
	n, ok := result.App.Graph().Node(context.Background(), "sink")
	require.True(t, ok)
	received := n.(*testutil.SinkNode).Received()
	require.Len(t, received, 3)
	assert.Equal(t, port.Texture{Source: "src", Tick: 3, Passes: []string{"a"}}, received[2])
	assert.False(t, result.App.Registry().Has("CameraNode"))
}

// TestPipeline_UnknownTypeFailsValidation validates that a pipeline naming an
// unregistered node type is rejected before anything runs.
func TestPipeline_UnknownTypeFailsValidation(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
node "HologramNode" "h" {}
`,
	}

	// --- Act ---
	result := runPipeline(t, files, 1)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "pipeline validation failed")
	assert.Contains(t, result.Err.Error(), "HologramNode")
	assert.Nil(t, result.App.Graph())
}

// TestPipeline_IncompatibleConnectionFailsLoad validates that connecting an
// audio output to a texture input is rejected at load time.
func TestPipeline_IncompatibleConnectionFailsLoad(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
node "AudioNode" "mic" {
  config {
    variant = "audiostreamvoicecall"
  }
}

node "Stitch" "stitch" {}

connect {
  from = "mic.audio_out"
  to   = "stitch.video_in"
}
`,
	}

	// --- Act ---
	result := runPipeline(t, files, 1)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "incompatible port data types")
}
