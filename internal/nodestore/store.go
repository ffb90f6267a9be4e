// Package nodestore defines the interface for storing and retrieving the
// per-tick execution state of pipeline nodes.
//
// # Why Node Store Exists
//
// The node store isolates **mutable execution state** (status, last outputs,
// errors) from the **graph structure** managed by topologystore. State is
// rewritten for every node on every tick, while the structure only changes
// when the pipeline is edited.
//
// # Lifecycle and Usage
//
//  1. **Reset** at the start of every tick, so every node reads as Pending
//  2. **Mutated** by the graph as each node runs: Running, then Completed
//     (with an output snapshot) or Failed (with an error), or Skipped
//  3. **Queried** by the graph when deciding whether a downstream node must
//     be skipped, and by reporting code after the tick
//
// # State Transitions
//
//	Pending → Running → Completed (with output) OR Failed (with error)
//	Pending → Skipped (an upstream node failed or was skipped)
//
// Output snapshots survive Reset: a node that fails keeps the outputs of its
// last successful tick.
package nodestore

import (
	"context"

	"github.com/specialistvlad/stagegrid/internal/node"
)

// Store is the interface for managing the mutable execution state of nodes.
//
// # Thread-Safety Requirements
//
// Implementations MUST be thread-safe. The tick loop writes while health and
// metrics handlers read.
type Store interface {
	// SetStatus updates the execution status of a node.
	SetStatus(ctx context.Context, id string, status node.Status) error

	// GetStatus retrieves the current status. Returns StatusPending if no
	// status has been set since the last Reset.
	GetStatus(ctx context.Context, id string) (node.Status, error)

	// SetOutput records the output port values of a successful run.
	SetOutput(ctx context.Context, id string, output map[string]any) error

	// GetOutput retrieves the last recorded output, or nil.
	GetOutput(ctx context.Context, id string) (map[string]any, error)

	// SetError records the failure of a node for the current tick.
	SetError(ctx context.Context, id string, nodeErr error) error

	// GetError retrieves the error recorded since the last Reset, or nil.
	GetError(ctx context.Context, id string) (error, error)

	// Reset clears statuses and errors of every node. Outputs are kept.
	Reset(ctx context.Context) error

	// Delete forgets everything recorded for a node.
	Delete(ctx context.Context, id string) error
}
