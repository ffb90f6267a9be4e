package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/scene"
)

// Context returns a background context carrying a debug-level text logger
// that writes to w. A nil w discards the output.
func Context(w io.Writer) context.Context {
	if w == nil {
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

// ExecContext is a node.Context for driving a single node outside a graph.
// Inputs and outputs go straight to the node's own port values.
type ExecContext struct {
	Node     node.Node
	TickNum  uint64
	Store    *scene.Store
	Render   node.Renderer
	Importer node.StageImporter
}

var _ node.Context = (*ExecContext)(nil)

// NewExecContext binds an execution context to n at tick 1.
func NewExecContext(n node.Node) *ExecContext {
	return &ExecContext{Node: n, TickNum: 1}
}

func (c *ExecContext) NodeID() string { return c.Node.ID() }
func (c *ExecContext) Tick() uint64   { return c.TickNum }

func (c *ExecContext) Input(name string) (any, bool) {
	return c.Node.InputValue(name)
}

func (c *ExecContext) SetOutput(name string, v any) error {
	return c.Node.SetOutputValue(name, v)
}

func (c *ExecContext) Scene() *scene.Store       { return c.Store }
func (c *ExecContext) Renderer() node.Renderer   { return c.Render }
func (c *ExecContext) Stage() node.StageImporter { return c.Importer }

// FakeRenderer hands out sequential shader ids and records releases.
type FakeRenderer struct {
	// Err, when set, is returned by every LoadShader call.
	Err error

	mu       sync.Mutex
	next     uint32
	loaded   []string
	released []uint32
}

func (r *FakeRenderer) LoadShader(ctx context.Context, path string) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	r.next++
	r.loaded = append(r.loaded, path)
	return r.next, nil
}

func (r *FakeRenderer) ReleaseShader(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, id)
}

// Loaded returns the paths passed to LoadShader, in order.
func (r *FakeRenderer) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.loaded...)
}

// Released returns the ids passed to ReleaseShader, in order.
func (r *FakeRenderer) Released() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint32(nil), r.released...)
}
