package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/stagegrid/internal/graph"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/scene"
)

func TestMetrics_NodeAndTick(t *testing.T) {
	m := New()

	m.NodeProcessed("CameraNode", node.StatusCompleted, 2*time.Millisecond)
	m.NodeProcessed("CameraNode", node.StatusCompleted, time.Millisecond)
	m.NodeProcessed("Stitch", node.StatusFailed, time.Millisecond)
	m.NodeProcessed("ShaderNode", node.StatusSkipped, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.nodeResults.WithLabelValues("CameraNode", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodeResults.WithLabelValues("Stitch", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodeResults.WithLabelValues("ShaderNode", "skipped")))

	m.TickCompleted(&graph.TickReport{Tick: 1, Duration: 5 * time.Millisecond})
	m.TickCompleted(&graph.TickReport{
		Tick:     2,
		Duration: 5 * time.Millisecond,
		Results:  []graph.NodeResult{{NodeID: "stitch", Status: node.StatusFailed}},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticksTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tickFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(m.tickDuration))
}

func TestMetrics_TrackScene(t *testing.T) {
	m := New()
	store := scene.New(nil)
	require.NoError(t, m.TrackScene(store))

	store.AddEntity(scene.IdentityTransform())
	store.AddEntity(scene.IdentityTransform())

	expected := `
# HELP stagegrid_scene_entities Entities in the scene store.
# TYPE stagegrid_scene_entities gauge
stagegrid_scene_entities 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "stagegrid_scene_entities"))

	require.NoError(t, m.TrackScene(store), "tracking the same store again is a no-op")
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "stagegrid_scene_entities"))

	assert.ErrorIs(t, m.TrackScene(scene.New(nil)), ErrSceneTracked)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.TickCompleted(&graph.TickReport{Tick: 1, Duration: time.Millisecond})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stagegrid_ticks_total 1")
}
