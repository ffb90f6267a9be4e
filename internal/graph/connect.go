package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/entityid"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/topologystore"
)

// Connect joins an output port to an input port and returns the Edge-species
// entity ID of the new connection. On any error the graph is unchanged.
func (g *Graph) Connect(ctx context.Context, from, fromPort, to, toPort string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	src, ok := g.topology.GetNode(ctx, from)
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownNode, from)
	}
	dst, ok := g.topology.GetNode(ctx, to)
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownNode, to)
	}

	out, ok := src.Outputs().Lookup(fromPort)
	if !ok {
		return "", fmt.Errorf("%w: node '%s' has no output '%s'", node.ErrUnknownPort, from, fromPort)
	}
	in, ok := dst.Inputs().Lookup(toPort)
	if !ok {
		return "", fmt.Errorf("%w: node '%s' has no input '%s'", node.ErrUnknownPort, to, toPort)
	}

	if !out.Type.Compatible(in.Type) {
		return "", fmt.Errorf("%w: %s.%s is %s, %s.%s is %s", ErrIncompatibleTypes, from, fromPort, out.Type, to, toPort, in.Type)
	}
	if existing, taken := g.topology.InputConnection(ctx, to, toPort); taken {
		return "", fmt.Errorf("%w: %s.%s is fed by %s.%s", ErrInputConnected, to, toPort, existing.FromNode, existing.FromPort)
	}

	reaches, err := g.reachable(ctx, to, from)
	if err != nil {
		return "", err
	}
	if reaches {
		return "", fmt.Errorf("%w: %s -> %s", ErrCycle, from, to)
	}

	edgeID, err := entityid.GenerateEdge("CN", "PORT")
	if err != nil {
		return "", err
	}
	c := topologystore.Connection{ID: edgeID, FromNode: from, FromPort: fromPort, ToNode: to, ToPort: toPort}
	if err := g.topology.AddConnection(ctx, c); err != nil {
		return "", err
	}

	ctxlog.FromContext(ctx).Debug("Nodes connected.", "from", from+"."+fromPort, "to", to+"."+toPort, "edge", edgeID)
	return edgeID, nil
}

// Disconnect removes a connection by its edge ID.
func (g *Graph) Disconnect(ctx context.Context, edgeID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.topology.RemoveConnection(ctx, edgeID)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownConnection, edgeID)
	}
	ctxlog.FromContext(ctx).Debug("Nodes disconnected.", "from", c.FromNode+"."+c.FromPort, "to", c.ToNode+"."+c.ToPort)
	return nil
}

// reachable reports whether target can be reached from start by following
// connections downstream. start == target counts as reachable.
func (g *Graph) reachable(ctx context.Context, start, target string) (bool, error) {
	visited := make(map[string]struct{})
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true, nil
		}
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}

		next, err := g.topology.DependentsOf(ctx, cur)
		if err != nil {
			return false, err
		}
		stack = append(stack, next...)
	}
	return false, nil
}
