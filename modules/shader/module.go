// Package shader provides the ShaderNode, which runs a fragment shader over
// its input texture.
package shader

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// TypeName is the registry name of the shader node.
const TypeName = "ShaderNode"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the shader node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node holds at most one loaded shader. Changing the path releases the old
// shader and loads the new one on the next Process call.
type Node struct {
	*node.Base

	mu       sync.Mutex
	path     string
	shaderID uint32
	renderer node.Renderer
}

// New creates an uninitialized shader node.
func New(id string) node.Node {
	return &Node{Base: node.NewBase(id, TypeName, node.Metadata{
		DisplayName: "Shader",
		Category:    "Effects",
		Description: "Applies a fragment shader to the incoming texture",
		Tags:        []string{"shader", "gpu", "effect"},
		Color:       "#AA44FF",
		SupportsGPU: true,
		Compute:     "medium",
		MemoryMB:    16,
		TypeCode:    "SH",
		Archetype:   "FRAG",
	})}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	path, err := cfg.String("shader_path", "")
	if err != nil {
		return err
	}
	n.AddInput("texture_in", "Texture In", port.MediaTexture)
	n.AddOutput("texture_out", "Texture Out", port.MediaTexture)
	n.SetShaderPath(path)
	n.MarkInitialized()
	return nil
}

// SetShaderPath changes the shader source.
func (n *Node) SetShaderPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == path {
		return
	}
	n.path = path
	n.Dirty().Touch()
}

// ShaderPath returns the configured shader source.
func (n *Node) ShaderPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

// ShaderID returns the renderer handle of the loaded shader, or zero.
func (n *Node) ShaderID() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shaderID
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Dirty().IsDirty() {
		if err := n.reloadLocked(ctx, ec.Renderer()); err != nil {
			return err
		}
		n.Dirty().Consume(ctx)
	}
	if n.shaderID == 0 {
		return fmt.Errorf("shader: %w", node.ErrEmptyPath)
	}

	v, ok := ec.Input("texture_in")
	if !ok {
		return fmt.Errorf("texture_in: %w", node.ErrNoInput)
	}
	tex, ok := v.(port.Texture)
	if !ok {
		return fmt.Errorf("texture_in carries %T: %w", v, node.ErrNoInput)
	}
	return ec.SetOutput("texture_out", tex.WithPass("shader:"+n.path))
}

func (n *Node) reloadLocked(ctx context.Context, r node.Renderer) error {
	if r == nil {
		return node.ErrRendererUnavailable
	}
	if n.path == "" {
		return fmt.Errorf("shader_path: %w", node.ErrEmptyPath)
	}
	id, err := r.LoadShader(ctx, n.path)
	if err != nil {
		return fmt.Errorf("failed to load shader %s: %w", n.path, err)
	}
	n.releaseLocked()
	n.shaderID, n.renderer = id, r
	ctxlog.FromContext(ctx).Info("Shader loaded.", "node", n.ID(), "path", n.path, "shader_id", id)
	return nil
}

func (n *Node) releaseLocked() {
	if n.shaderID != 0 && n.renderer != nil {
		n.renderer.ReleaseShader(n.shaderID)
	}
	n.shaderID, n.renderer = 0, nil
}

func (n *Node) Cleanup(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.releaseLocked()
}
