// Package video provides the VideoNode, a file or stream video source.
package video

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// TypeName is the registry name of the video node.
const TypeName = "VideoNode"

// Variants lists the accepted values of the variant option. File variants
// read video_path; stream variants do not need one.
var Variants = []string{
	"videofile",
	"videofilecinematic",
	"videofiletutorial",
	"videofilevr360",
	"videofilestereoscopic",
	"videofilepointcloud",
	"videostreamcamera",
	"videostreamscreen",
	"videostreamnetwork",
	"videostreamvr180",
	"videostreamstereoscopic",
}

// DetectVariant guesses a file variant from the file's base name.
func DetectVariant(path string) string {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	switch {
	case strings.Contains(base, "360"):
		return "videofilevr360"
	case strings.Contains(base, "3d"), strings.Contains(base, "sbs"), strings.Contains(base, "tb"):
		return "videofilestereoscopic"
	case strings.Contains(base, "cinema"), strings.Contains(base, "prores"), strings.Contains(base, "log"):
		return "videofilecinematic"
	case strings.Contains(base, "tutorial"), strings.Contains(base, "lesson"):
		return "videofiletutorial"
	case strings.Contains(base, "pointcloud"), strings.Contains(base, "volumetric"):
		return "videofilepointcloud"
	}
	return "videofile"
}

// IsStream reports whether the variant is a live stream rather than a file.
func IsStream(variant string) bool {
	return strings.HasPrefix(variant, "videostream")
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the video node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node plays a video file or stream, emitting one frame and one audio buffer
// per tick.
type Node struct {
	*node.Base

	mu      sync.Mutex
	path    string
	variant string
	loaded  string
}

// New creates an uninitialized video node.
func New(id string) node.Node {
	return &Node{Base: node.NewBase(id, TypeName, node.Metadata{
		DisplayName: "Video",
		Category:    "Input",
		Description: "Video file or stream playback",
		Tags:        []string{"video", "media", "playback"},
		Color:       "#4488FF",
		SupportsGPU: true,
		SupportsCPU: true,
		Compute:     "medium",
		MemoryMB:    256,
		TypeCode:    "VD",
		Archetype:   "CLIP",
	})}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	path, err := cfg.String("video_path", "")
	if err != nil {
		return err
	}
	variant, err := cfg.String("variant", "")
	if err != nil {
		return err
	}
	if variant == "" {
		variant = DetectVariant(path)
	}
	if !slices.Contains(Variants, variant) {
		return fmt.Errorf("%w: unknown video variant '%s'", node.ErrInvalidConfig, variant)
	}

	n.AddOutput("visual_out", "Visual Out", port.MediaTexture)
	n.AddOutput("audio_out", "Audio Out", port.MediaAudio)

	n.mu.Lock()
	n.variant = variant
	n.mu.Unlock()
	n.SetVideoPath(path)
	if IsStream(variant) {
		n.Dirty().Touch()
	}
	n.MarkInitialized()
	return nil
}

// SetVideoPath changes the file to play. It is opened on the next Process call.
func (n *Node) SetVideoPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == path {
		return
	}
	n.path = path
	n.Dirty().Touch()
}

// VideoPath returns the configured file.
func (n *Node) VideoPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

// Variant returns the configured variant.
func (n *Node) Variant() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.variant
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}

	n.mu.Lock()
	if n.Dirty().IsDirty() {
		if !IsStream(n.variant) && n.path == "" {
			n.mu.Unlock()
			return fmt.Errorf("video variant %s: %w", n.variant, node.ErrEmptyPath)
		}
		ctxlog.FromContext(ctx).Info("Opening video source.", "node", n.ID(), "path", n.path, "variant", n.variant)
		n.loaded = n.source()
		n.Dirty().Consume(ctx)
	}
	source := n.loaded
	n.mu.Unlock()

	if err := ec.SetOutput("visual_out", port.Texture{Source: source, Tick: ec.Tick()}); err != nil {
		return err
	}
	return ec.SetOutput("audio_out", port.AudioBuffer{Source: source, Tick: ec.Tick()})
}

// source names what is playing: the file path, or the stream variant when
// there is no file.
func (n *Node) source() string {
	if n.path != "" {
		return n.path
	}
	return n.variant
}

func (n *Node) Cleanup(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loaded = ""
}
