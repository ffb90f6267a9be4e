// Package stitch provides the Stitch node, which remaps fisheye video to an
// equirectangular frame using an STMap texture.
package stitch

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// TypeName is the registry name of the stitch node.
const TypeName = "Stitch"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the stitch node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node stitches the frame on video_in. The stmap input is optional; without
// it the frame passes through unchanged.
type Node struct {
	*node.Base
}

// New creates an uninitialized stitch node.
func New(id string) node.Node {
	n := &Node{Base: node.NewBase(id, TypeName, node.Metadata{
		DisplayName: "STMap Stitch",
		Category:    "Video",
		Description: "Fisheye to equirectangular stitching using STMap UV remapping",
		Tags:        []string{"stitching", "fisheye", "360", "stmap"},
		Color:       "#4488FF",
		SupportsGPU: true,
		Compute:     "medium",
		MemoryMB:    100,
		TypeCode:    "ST",
		Archetype:   "STMP",
	})}
	n.AddInput("video_in", "Video Input", port.MediaTexture)
	n.AddInput("stmap", "STMap Texture", port.MediaTexture)
	n.AddOutput("video_out", "Stitched Output", port.MediaTexture)
	return n
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	n.MarkInitialized()
	return nil
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}
	v, ok := ec.Input("video_in")
	if !ok {
		return fmt.Errorf("video_in: %w", node.ErrNoInput)
	}
	frame, ok := v.(port.Texture)
	if !ok {
		return fmt.Errorf("video_in carries %T: %w", v, node.ErrNoInput)
	}

	if m, ok := ec.Input("stmap"); ok {
		if stmap, ok := m.(port.Texture); ok {
			frame = frame.WithPass("stmap:" + stmap.Source)
		}
	}
	return ec.SetOutput("video_out", frame)
}

// Cleanup leaves the node uninitialized; Process fails until Initialize
// runs again.
func (n *Node) Cleanup(ctx context.Context) {
	n.ClearInitialized()
}
