package graph

import (
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/scene"
)

// execContext is the node.Context handed to a single node for a single tick.
type execContext struct {
	g    *Graph
	n    node.Node
	tick uint64
}

var _ node.Context = (*execContext)(nil)

func (c *execContext) NodeID() string { return c.n.ID() }
func (c *execContext) Tick() uint64   { return c.tick }

func (c *execContext) Input(name string) (any, bool) {
	return c.n.InputValue(name)
}

func (c *execContext) SetOutput(name string, v any) error {
	return c.n.SetOutputValue(name, v)
}

func (c *execContext) Scene() *scene.Store       { return c.g.scene }
func (c *execContext) Renderer() node.Renderer   { return c.g.renderer }
func (c *execContext) Stage() node.StageImporter { return c.g.stage }
