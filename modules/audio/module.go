// Package audio provides the AudioNode, an audio clip or stream source.
package audio

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

// TypeName is the registry name of the audio node.
const TypeName = "AudioNode"

// Variants lists the accepted values of the variant option.
var Variants = []string{
	"audioclip",
	"audioclipmusic",
	"audioclippodcast",
	"audioclipfx",
	"audiostream",
	"audiostreammusic",
	"audiostreampodcast",
	"audiostreamvoicecall",
}

// DetectVariant guesses a clip variant from the file's base name.
func DetectVariant(path string) string {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	has := func(words ...string) bool {
		return slices.ContainsFunc(words, func(w string) bool { return strings.Contains(base, w) })
	}
	switch {
	case has("music", "song", "track"):
		return "audioclipmusic"
	case has("podcast", "episode", "voice"):
		return "audioclippodcast"
	case has("fx", "effect", "sound"):
		return "audioclipfx"
	}
	return "audioclip"
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the audio node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node plays an audio clip or stream, emitting one buffer per tick.
type Node struct {
	*node.Base

	mu      sync.Mutex
	path    string
	variant string
	loaded  string
}

// New creates an uninitialized audio node.
func New(id string) node.Node {
	return &Node{Base: node.NewBase(id, TypeName, node.Metadata{
		DisplayName: "Audio",
		Category:    "Input",
		Description: "Audio clip or stream playback",
		Tags:        []string{"audio", "media"},
		Color:       "#FFAA33",
		SupportsCPU: true,
		Compute:     "low",
		MemoryMB:    32,
		TypeCode:    "AU",
		Archetype:   "CLIP",
	})}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	path, err := cfg.String("audio_path", "")
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
		return fmt.Errorf("%w: unknown audio variant '%s'", node.ErrInvalidConfig, variant)
	}

	n.AddOutput("audio_out", "Audio Out", port.MediaAudio)

	n.mu.Lock()
	n.variant = variant
	n.mu.Unlock()
	n.SetAudioPath(path)
	if isStream(variant) {
		n.Dirty().Touch()
	}
	n.MarkInitialized()
	return nil
}

func isStream(variant string) bool {
	return strings.HasPrefix(variant, "audiostream")
}

// SetAudioPath changes the file to play. It is opened on the next Process call.
func (n *Node) SetAudioPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == path {
		return
	}
	n.path = path
	n.Dirty().Touch()
}

// AudioPath returns the configured file.
func (n *Node) AudioPath() string {
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
		if !isStream(n.variant) && n.path == "" {
			n.mu.Unlock()
			return fmt.Errorf("audio variant %s: %w", n.variant, node.ErrEmptyPath)
		}
		ctxlog.FromContext(ctx).Info("Opening audio source.", "node", n.ID(), "path", n.path, "variant", n.variant)
		n.loaded = n.path
		if n.loaded == "" {
			n.loaded = n.variant
		}
		n.Dirty().Consume(ctx)
	}
	source := n.loaded
	n.mu.Unlock()

	return ec.SetOutput("audio_out", port.AudioBuffer{Source: source, Tick: ec.Tick()})
}

func (n *Node) Cleanup(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loaded = ""
}
