package graph

import (
	"context"
	"fmt"
	"strings"
)

// Order returns a topological order of node identities. Among nodes that are
// ready at the same time, the one added first comes first.
func (g *Graph) Order(ctx context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orderLocked(ctx)
}

func (g *Graph) orderLocked(ctx context.Context) ([]string, error) {
	nodes := g.topology.AllNodes(ctx)
	indegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		deps, err := g.topology.DependenciesOf(ctx, n.ID())
		if err != nil {
			return nil, err
		}
		indegree[n.ID()] = len(deps)
	}

	order := make([]string, 0, len(nodes))
	emitted := make(map[string]bool, len(nodes))
	for len(order) < len(nodes) {
		next := ""
		for _, n := range nodes {
			if !emitted[n.ID()] && indegree[n.ID()] == 0 {
				next = n.ID()
				break
			}
		}
		if next == "" {
			var stuck []string
			for _, n := range nodes {
				if !emitted[n.ID()] {
					stuck = append(stuck, n.ID())
				}
			}
			return nil, fmt.Errorf("%w: unresolved nodes [%s]", ErrCycle, strings.Join(stuck, ", "))
		}

		emitted[next] = true
		order = append(order, next)
		dependents, err := g.topology.DependentsOf(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, d := range dependents {
			indegree[d]--
		}
	}
	return order, nil
}
