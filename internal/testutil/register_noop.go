package testutil

import (
	"context"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// NoOpModule registers a single "NoOp" node type that declares no ports and
// does nothing. It's useful for tests that only care about graph structure.
type NoOpModule struct{}

// Register implements the registry.Module interface.
func (m *NoOpModule) Register(r *registry.Registry) {
	r.RegisterNodeType("NoOp", NewNoOpNode)
}

type noOpNode struct {
	*node.Base
}

// NewNoOpNode returns a node with no ports whose Process always succeeds.
func NewNoOpNode(id string) node.Node {
	return &noOpNode{Base: node.NewBase(id, "NoOp", node.Metadata{DisplayName: "No-Op"})}
}

func (n *noOpNode) Initialize(ctx context.Context, cfg node.Config) error {
	n.MarkInitialized()
	return nil
}

func (n *noOpNode) Process(ctx context.Context, ec node.Context) error { return nil }

func (n *noOpNode) Cleanup(ctx context.Context) {}
