package inmemorystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetStatus(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Get status of a node that doesn't exist yet
	status, err := s.GetStatus(ctx, "cam")
	require.NoError(t, err)
	assert.Equal(t, node.StatusPending, status)

	require.NoError(t, s.SetStatus(ctx, "cam", node.StatusRunning))

	status, err = s.GetStatus(ctx, "cam")
	require.NoError(t, err)
	assert.Equal(t, node.StatusRunning, status)
}

func TestSetAndGetOutput(t *testing.T) {
	s := New()
	ctx := context.Background()

	out, err := s.GetOutput(ctx, "cam")
	require.NoError(t, err)
	assert.Nil(t, out)

	original := map[string]any{"visual_out": 1}
	require.NoError(t, s.SetOutput(ctx, "cam", original))
	original["visual_out"] = 2

	out, err = s.GetOutput(ctx, "cam")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"visual_out": 1}, out, "store keeps its own copy")
}

func TestSetAndGetError(t *testing.T) {
	s := New()
	ctx := context.Background()

	nodeErr, err := s.GetError(ctx, "cam")
	require.NoError(t, err)
	assert.Nil(t, nodeErr)

	expected := errors.New("device lost")
	require.NoError(t, s.SetError(ctx, "cam", expected))

	nodeErr, err = s.GetError(ctx, "cam")
	require.NoError(t, err)
	assert.Equal(t, expected, nodeErr)
}

func TestResetKeepsOutputs(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.SetStatus(ctx, "cam", node.StatusFailed))
	require.NoError(t, s.SetError(ctx, "cam", errors.New("boom")))
	require.NoError(t, s.SetOutput(ctx, "cam", map[string]any{"out": "frame"}))

	require.NoError(t, s.Reset(ctx))

	status, _ := s.GetStatus(ctx, "cam")
	assert.Equal(t, node.StatusPending, status)
	nodeErr, _ := s.GetError(ctx, "cam")
	assert.Nil(t, nodeErr)
	out, _ := s.GetOutput(ctx, "cam")
	assert.Equal(t, map[string]any{"out": "frame"}, out)

	require.NoError(t, s.Delete(ctx, "cam"))
	out, _ = s.GetOutput(ctx, "cam")
	assert.Nil(t, out)
}

// TestStore_ConcurrentAccess verifies that the store can be safely accessed by
// multiple goroutines simultaneously without data races or lost writes.
func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()
	numGoroutines := 100
	var wg sync.WaitGroup

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("node-%d", i)
			s.SetStatus(ctx, id, node.StatusCompleted)
			s.SetOutput(ctx, id, map[string]any{"out": i})
			s.SetError(ctx, id, fmt.Errorf("error for node %d", i))
		}(i)
	}
	wg.Wait()

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("node-%d", i)

			status, err := s.GetStatus(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, node.StatusCompleted, status, "mismatched status for node %d", i)

			output, err := s.GetOutput(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, i, output["out"], "mismatched output for node %d", i)

			nodeErr, err := s.GetError(ctx, id)
			assert.NoError(t, err)
			assert.EqualError(t, nodeErr, fmt.Sprintf("error for node %d", i), "mismatched error for node %d", i)
		}(i)
	}
	wg.Wait()
}
