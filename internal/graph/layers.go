package graph

import (
	"context"
)

// Layer is a row of the mixer view of a pipeline.
type Layer struct {
	NodeID      string
	EntityID    string
	DisplayName string
	Type        string
	Color       string
	Opacity     float64
	Visible     bool
}

// Layers returns one row per node, in insertion order. Opacity and visibility
// come from the "opacity" and "active" input values when a node has them.
func (g *Graph) Layers(ctx context.Context) []Layer {
	nodes := g.topology.AllNodes(ctx)
	layers := make([]Layer, 0, len(nodes))
	for _, n := range nodes {
		meta := n.Metadata()
		l := Layer{
			NodeID:      n.ID(),
			EntityID:    n.EntityID(),
			DisplayName: meta.DisplayName,
			Type:        n.Type(),
			Color:       meta.Color,
			Opacity:     1,
			Visible:     true,
		}
		if l.DisplayName == "" {
			l.DisplayName = n.ID()
		}
		if v, ok := n.InputValue("opacity"); ok {
			if f, ok := v.(float64); ok {
				l.Opacity = f
			}
		}
		if v, ok := n.InputValue("active"); ok {
			if b, ok := v.(bool); ok {
				l.Visible = b
			}
		}
		layers = append(layers, l)
	}
	return layers
}
