// internal/node/node.go
package node

import (
	"context"

	"github.com/specialistvlad/stagegrid/internal/port"
)

// Node is the polymorphic processing unit owned by an execution graph.
type Node interface {
	// ID is the caller-assigned identity, unique within a graph.
	ID() string
	// Type is the registry name the node was created under.
	Type() string
	// EntityID is the structured identifier assigned by the graph.
	EntityID() string
	SetEntityID(id string)
	Metadata() Metadata

	Inputs() port.Set
	Outputs() port.Set

	Initialize(ctx context.Context, cfg Config) error
	Process(ctx context.Context, ec Context) error
	// Cleanup releases held resources. It must be safe to call repeatedly.
	Cleanup(ctx context.Context)

	InputValue(name string) (any, bool)
	OutputValue(name string) (any, bool)
	SetInputValue(name string, v any) error
	SetOutputValue(name string, v any) error
	ClearInputs()
}

// Metadata is the descriptive record shown for a node in listings.
type Metadata struct {
	DisplayName string
	Category    string
	Description string
	Tags        []string
	// Color is a "#RRGGBB" hex string.
	Color       string
	SupportsGPU bool
	SupportsCPU bool
	// Compute is a free-form cost hint such as "low" or "high".
	Compute  string
	MemoryMB int

	// TypeCode and Archetype feed the structured entity ID the graph assigns.
	// They must be 1-2 and 1-4 alphanumeric characters.
	TypeCode  string
	Archetype string
}
