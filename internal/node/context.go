// internal/node/context.go
package node

import (
	"context"

	"github.com/specialistvlad/stagegrid/internal/scene"
)

// Context is the per-tick handle a node uses during Process.
type Context interface {
	NodeID() string
	Tick() uint64
	// Input returns the value delivered to the named input port this tick.
	Input(name string) (any, bool)
	// SetOutput writes the named output port. It fails with ErrUnknownPort
	// when the node declares no such output.
	SetOutput(name string, v any) error

	// Scene returns the shared scene store, or nil.
	Scene() *scene.Store
	// Renderer returns the rendering backend, or nil.
	Renderer() Renderer
	// Stage returns the stage importer, or nil.
	Stage() StageImporter
}

// Renderer is the rendering backend boundary. Only resource handles cross it.
type Renderer interface {
	LoadShader(ctx context.Context, path string) (uint32, error)
	ReleaseShader(id uint32)
}

// StageImporter loads an external stage document into the scene store and
// reports how many entities it created.
type StageImporter interface {
	ImportStage(ctx context.Context, path string) (int, error)
}
