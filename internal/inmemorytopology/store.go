package inmemorytopology

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/topologystore"
)

// Store implements the topologystore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]node.Node
	order []string // node identities in insertion order
	conns []topologystore.Connection
}

// New creates a new, empty in-memory topology store.
func New() topologystore.Store {
	return &Store{
		nodes: make(map[string]node.Node),
	}
}

// AddNode adds a new node to the store.
func (s *Store) AddNode(ctx context.Context, n node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := n.ID()
	if _, exists := s.nodes[id]; exists {
		return fmt.Errorf("%w: '%s'", topologystore.ErrNodeExists, id)
	}
	s.nodes[id] = n
	s.order = append(s.order, id)
	return nil
}

// RemoveNode removes a node together with its connections.
func (s *Store) RemoveNode(ctx context.Context, id string) ([]topologystore.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[id]; !exists {
		return nil, fmt.Errorf("%w: '%s'", topologystore.ErrNodeNotFound, id)
	}
	delete(s.nodes, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })

	var dropped []topologystore.Connection
	s.conns = slices.DeleteFunc(s.conns, func(c topologystore.Connection) bool {
		if c.FromNode == id || c.ToNode == id {
			dropped = append(dropped, c)
			return true
		}
		return false
	})
	return dropped, nil
}

// GetNode retrieves a single node by identity.
func (s *Store) GetNode(ctx context.Context, id string) (node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	return n, ok
}

// AllNodes returns a slice of all nodes in insertion order.
func (s *Store) AllNodes(ctx context.Context) []node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]node.Node, 0, len(s.order))
	for _, id := range s.order {
		nodes = append(nodes, s.nodes[id])
	}
	return nodes
}

// AddConnection stores a connection between two existing nodes.
func (s *Store) AddConnection(ctx context.Context, c topologystore.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[c.FromNode]; !exists {
		return fmt.Errorf("connection source: %w: '%s'", topologystore.ErrNodeNotFound, c.FromNode)
	}
	if _, exists := s.nodes[c.ToNode]; !exists {
		return fmt.Errorf("connection target: %w: '%s'", topologystore.ErrNodeNotFound, c.ToNode)
	}
	s.conns = append(s.conns, c)
	return nil
}

// RemoveConnection removes a connection by ID.
func (s *Store) RemoveConnection(ctx context.Context, id string) (topologystore.Connection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.conns {
		if c.ID == id {
			s.conns = slices.Delete(s.conns, i, i+1)
			return c, true
		}
	}
	return topologystore.Connection{}, false
}

// Connections returns a snapshot of every connection.
func (s *Store) Connections(ctx context.Context) []topologystore.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.conns)
}

// InputConnection finds the connection feeding an input port.
func (s *Store) InputConnection(ctx context.Context, nodeID, portName string) (topologystore.Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.conns {
		if c.ToNode == nodeID && c.ToPort == portName {
			return c, true
		}
	}
	return topologystore.Connection{}, false
}

// DependenciesOf returns the identities of all nodes feeding id.
func (s *Store) DependenciesOf(ctx context.Context, id string) ([]string, error) {
	return s.neighbours(id, func(c topologystore.Connection) (string, bool) {
		return c.FromNode, c.ToNode == id
	})
}

// DependentsOf returns the identities of all nodes fed by id.
func (s *Store) DependentsOf(ctx context.Context, id string) ([]string, error) {
	return s.neighbours(id, func(c topologystore.Connection) (string, bool) {
		return c.ToNode, c.FromNode == id
	})
}

func (s *Store) neighbours(id string, pick func(topologystore.Connection) (string, bool)) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.nodes[id]; !exists {
		return nil, fmt.Errorf("%w: '%s'", topologystore.ErrNodeNotFound, id)
	}

	out := []string{}
	seen := make(map[string]struct{})
	for _, c := range s.conns {
		other, ok := pick(c)
		if !ok {
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
	}
	return out, nil
}
