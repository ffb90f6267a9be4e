// Package topologystore defines the interface for storing and retrieving the
// structure of a pipeline: its nodes and the port-to-port connections
// between them.
//
// # Why Topology Store Exists
//
// The topology store isolates the **graph structure** (nodes and connections)
// from the **per-tick execution state** (status, errors) managed by nodestore.
// Structure changes only when the pipeline is edited; execution state changes
// on every tick. Keeping them apart lets health and metrics readers query one
// without contending with writers of the other.
//
// # Ordering
//
// Implementations remember insertion order for both nodes and connections.
// The graph relies on it to break ties deterministically when it computes a
// topological order.
//
// # Validation
//
// The store checks only referential integrity: both ends of a connection must
// exist. Type compatibility, single-writer inputs and acyclicity are the
// graph's responsibility, checked before a connection reaches the store.
package topologystore

import (
	"context"
	"errors"

	"github.com/specialistvlad/stagegrid/internal/node"
)

var (
	ErrNodeExists   = errors.New("node already exists")
	ErrNodeNotFound = errors.New("node not found")
)

// Connection is a directed edge from an output port to an input port.
type Connection struct {
	// ID is the Edge-species entity identifier assigned by the graph.
	ID       string
	FromNode string
	FromPort string
	ToNode   string
	ToPort   string
}

// Store is the interface for managing the structure of a pipeline graph.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use. The tick loop reads the
// topology while health and metrics handlers may read it from other
// goroutines.
type Store interface {
	// AddNode registers a node under its identity. Adding a second node with
	// the same identity fails with ErrNodeExists.
	AddNode(ctx context.Context, n node.Node) error

	// RemoveNode drops a node and every connection touching it, returning the
	// dropped connections.
	RemoveNode(ctx context.Context, id string) ([]Connection, error)

	// GetNode retrieves a single node by identity.
	GetNode(ctx context.Context, id string) (node.Node, bool)

	// AllNodes returns every node in insertion order.
	AllNodes(ctx context.Context) []node.Node

	// AddConnection stores a connection. Both endpoints must already exist.
	AddConnection(ctx context.Context, c Connection) error

	// RemoveConnection drops the connection with the given ID.
	RemoveConnection(ctx context.Context, id string) (Connection, bool)

	// Connections returns every connection in insertion order.
	Connections(ctx context.Context) []Connection

	// InputConnection returns the connection feeding the given input port.
	InputConnection(ctx context.Context, nodeID, portName string) (Connection, bool)

	// DependenciesOf returns the distinct upstream node identities of id, in
	// connection insertion order.
	DependenciesOf(ctx context.Context, id string) ([]string, error)

	// DependentsOf returns the distinct downstream node identities of id, in
	// connection insertion order.
	DependentsOf(ctx context.Context, id string) ([]string, error)
}
