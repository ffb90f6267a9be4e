// Package effect provides the EffectNode, a post-processing effect preset
// applied to a texture.
package effect

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// TypeName is the registry name of the effect node.
const TypeName = "EffectNode"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the effect node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node compiles its effect preset through the renderer and tags every frame
// that passes through with it. An optional "mix" option in [0,1] is recorded
// alongside the pass.
type Node struct {
	*node.Base

	mu       sync.Mutex
	path     string
	mix      float64
	handle   uint32
	renderer node.Renderer
}

// New creates an uninitialized effect node.
func New(id string) node.Node {
	return &Node{Base: node.NewBase(id, TypeName, node.Metadata{
		DisplayName: "Effect",
		Category:    "Effects",
		Description: "Post-processing effect preset",
		Tags:        []string{"effect", "post", "gpu"},
		Color:       "#FF44AA",
		SupportsGPU: true,
		Compute:     "medium",
		MemoryMB:    32,
		TypeCode:    "EF",
		Archetype:   "POST",
	})}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	path, err := cfg.String("effect_path", "")
	if err != nil {
		return err
	}
	mix, err := cfg.Number("mix", 1)
	if err != nil {
		return err
	}
	if mix < 0 || mix > 1 {
		return fmt.Errorf("%w: mix %v is outside [0,1]", node.ErrInvalidConfig, mix)
	}

	n.AddInput("texture_in", "Texture In", port.MediaTexture)
	n.AddOutput("texture_out", "Texture Out", port.MediaTexture)
	n.mu.Lock()
	n.mix = mix
	n.mu.Unlock()
	n.SetEffectPath(path)
	n.MarkInitialized()
	return nil
}

// SetEffectPath changes the effect preset.
func (n *Node) SetEffectPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == path {
		return
	}
	n.path = path
	n.Dirty().Touch()
}

// EffectPath returns the configured preset.
func (n *Node) EffectPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Dirty().IsDirty() {
		r := ec.Renderer()
		if r == nil {
			return node.ErrRendererUnavailable
		}
		if n.path == "" {
			return fmt.Errorf("effect_path: %w", node.ErrEmptyPath)
		}
		handle, err := r.LoadShader(ctx, n.path)
		if err != nil {
			return fmt.Errorf("failed to load effect %s: %w", n.path, err)
		}
		if n.handle != 0 && n.renderer != nil {
			n.renderer.ReleaseShader(n.handle)
		}
		n.handle, n.renderer = handle, r
		ctxlog.FromContext(ctx).Info("Effect loaded.", "node", n.ID(), "path", n.path)
		n.Dirty().Consume(ctx)
	}
	if n.handle == 0 {
		return fmt.Errorf("effect: %w", node.ErrEmptyPath)
	}

	v, ok := ec.Input("texture_in")
	if !ok {
		return fmt.Errorf("texture_in: %w", node.ErrNoInput)
	}
	tex, ok := v.(port.Texture)
	if !ok {
		return fmt.Errorf("texture_in carries %T: %w", v, node.ErrNoInput)
	}
	return ec.SetOutput("texture_out", tex.WithPass(fmt.Sprintf("effect:%s@%g", n.path, n.mix)))
}

func (n *Node) Cleanup(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.handle != 0 && n.renderer != nil {
		n.renderer.ReleaseShader(n.handle)
	}
	n.handle, n.renderer = 0, nil
}
