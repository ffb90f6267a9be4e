package inmemorytopology

import (
	"context"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/testutil"
	"github.com/specialistvlad/stagegrid/internal/topologystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndGetNode(t *testing.T) {
	s := New()
	ctx := context.Background()
	testNode := testutil.NewSourceNode("cam")

	require.NoError(t, s.AddNode(ctx, testNode))

	retrieved, ok := s.GetNode(ctx, "cam")
	require.True(t, ok)
	assert.Same(t, testNode, retrieved)

	err := s.AddNode(ctx, testutil.NewSinkNode("cam"))
	assert.ErrorIs(t, err, topologystore.ErrNodeExists)
}

func TestAllNodes_InsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.AddNode(ctx, testutil.NewNoOpNode(id)))
	}

	var ids []string
	for _, n := range s.AllNodes(ctx) {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestConnectionsAndDependencies(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, testutil.NewSourceNode("a")))
	require.NoError(t, s.AddNode(ctx, testutil.NewPassNode("b")))
	require.NoError(t, s.AddNode(ctx, testutil.NewSinkNode("c")))

	require.NoError(t, s.AddConnection(ctx, topologystore.Connection{ID: "e1", FromNode: "a", FromPort: "out", ToNode: "b", ToPort: "in"}))
	require.NoError(t, s.AddConnection(ctx, topologystore.Connection{ID: "e2", FromNode: "b", FromPort: "out", ToNode: "c", ToPort: "in"}))

	deps, err := s.DependenciesOf(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, deps)

	dependents, err := s.DependentsOf(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, dependents)

	deps, err = s.DependenciesOf(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, deps)

	c, ok := s.InputConnection(ctx, "c", "in")
	require.True(t, ok)
	assert.Equal(t, "e2", c.ID)

	_, err = s.DependenciesOf(ctx, "ghost")
	assert.ErrorIs(t, err, topologystore.ErrNodeNotFound)

	err = s.AddConnection(ctx, topologystore.Connection{ID: "e3", FromNode: "ghost", ToNode: "c"})
	assert.ErrorIs(t, err, topologystore.ErrNodeNotFound)
}

func TestRemoveNodeDropsConnections(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, testutil.NewSourceNode("a")))
	require.NoError(t, s.AddNode(ctx, testutil.NewPassNode("b")))
	require.NoError(t, s.AddNode(ctx, testutil.NewSinkNode("c")))
	require.NoError(t, s.AddConnection(ctx, topologystore.Connection{ID: "e1", FromNode: "a", FromPort: "out", ToNode: "b", ToPort: "in"}))
	require.NoError(t, s.AddConnection(ctx, topologystore.Connection{ID: "e2", FromNode: "b", FromPort: "out", ToNode: "c", ToPort: "in"}))

	dropped, err := s.RemoveNode(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, dropped, 2)
	assert.Empty(t, s.Connections(ctx))
	assert.Len(t, s.AllNodes(ctx), 2)

	_, err = s.RemoveNode(ctx, "b")
	assert.ErrorIs(t, err, topologystore.ErrNodeNotFound)
}

func TestRemoveConnection(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, testutil.NewSourceNode("a")))
	require.NoError(t, s.AddNode(ctx, testutil.NewSinkNode("b")))
	require.NoError(t, s.AddConnection(ctx, topologystore.Connection{ID: "e1", FromNode: "a", FromPort: "out", ToNode: "b", ToPort: "in"}))

	c, ok := s.RemoveConnection(ctx, "e1")
	require.True(t, ok)
	assert.Equal(t, "a", c.FromNode)

	_, ok = s.RemoveConnection(ctx, "e1")
	assert.False(t, ok)
}
