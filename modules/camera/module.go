// Package camera provides the CameraNode, a live capture source.
package camera

import (
	"context"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// TypeName is the registry name of the camera node.
const TypeName = "CameraNode"

// DefaultDevice is used when no device_id is configured.
const DefaultDevice = "default"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the camera node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node captures frames from a device. Each tick it emits a texture and an
// audio buffer tagged with the device it reads from.
type Node struct {
	*node.Base

	mu       sync.Mutex
	deviceID string
	opened   string
}

// New creates an uninitialized camera node.
func New(id string) node.Node {
	return &Node{Base: node.NewBase(id, TypeName, node.Metadata{
		DisplayName: "Camera",
		Category:    "Input",
		Description: "Live video and audio capture from a local device",
		Tags:        []string{"camera", "capture", "live"},
		Color:       "#44AA66",
		SupportsCPU: true,
		Compute:     "low",
		MemoryMB:    64,
		TypeCode:    "CA",
		Archetype:   "CAM",
	})}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	device, err := cfg.String("device_id", DefaultDevice)
	if err != nil {
		return err
	}
	n.AddOutput("visual_out", "Visual Out", port.MediaTexture)
	n.AddOutput("audio_out", "Audio Out", port.MediaAudio)
	n.SetDeviceID(device)
	n.MarkInitialized()
	return nil
}

// SetDeviceID selects the capture device. The device is reopened on the next
// Process call.
func (n *Node) SetDeviceID(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.deviceID == id {
		return
	}
	n.deviceID = id
	n.Dirty().Touch()
}

// DeviceID returns the configured capture device.
func (n *Node) DeviceID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.deviceID
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}
	n.mu.Lock()
	device := n.deviceID
	if n.Dirty().IsDirty() {
		ctxlog.FromContext(ctx).Info("Opening capture device.", "node", n.ID(), "device", device, "previous", n.opened)
		n.opened = device
		n.Dirty().Consume(ctx)
	}
	n.mu.Unlock()

	if err := ec.SetOutput("visual_out", port.Texture{Source: device, Tick: ec.Tick()}); err != nil {
		return err
	}
	return ec.SetOutput("audio_out", port.AudioBuffer{Source: device, Tick: ec.Tick()})
}

func (n *Node) Cleanup(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.opened != "" {
		ctxlog.FromContext(ctx).Debug("Closing capture device.", "node", n.ID(), "device", n.opened)
		n.opened = ""
	}
}
