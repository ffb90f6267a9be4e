// Package remotecontrol provides the RemoteControlNode, which follows a
// control value pushed by a socket.io server.
package remotecontrol

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// TypeName is the registry name of the remote control node.
const TypeName = "RemoteControlNode"

const defaultTimeout = 10 * time.Second

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the remote control node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Options are the node's connection settings.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Node connects on its first Process call and then, every tick, emits the
// most recent payload received for Event. Until the first payload arrives it
// emits the "initial" option when one is set, and nothing otherwise.
type Node struct {
	*node.Base

	dial Dialer

	mu      sync.Mutex
	opts    Options
	conn    Conn
	latest  any
	hasData bool
}

// New creates an uninitialized remote control node that dials socket.io.
func New(id string) node.Node {
	return NewWithDialer(id, DialSocketIO)
}

// NewWithDialer creates a node that connects through dial.
func NewWithDialer(id string, dial Dialer) *Node {
	return &Node{
		Base: node.NewBase(id, TypeName, node.Metadata{
			DisplayName: "Remote Control",
			Category:    "Control",
			Description: "Receives control values from a socket.io server",
			Tags:        []string{"remote", "socket.io", "control"},
			Color:       "#EE7733",
			SupportsCPU: true,
			Compute:     "low",
			TypeCode:    "RC",
			Archetype:   "SKIO",
		}),
		dial: dial,
	}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	logger := ctxlog.FromContext(ctx).With("node", n.ID())

	var opts Options
	var err error
	if opts.URL, err = cfg.String("url", ""); err != nil {
		return err
	}
	if opts.URL == "" {
		return fmt.Errorf("%w: 'url' is required", node.ErrInvalidConfig)
	}
	if opts.Namespace, err = cfg.String("namespace", "/"); err != nil {
		return err
	}
	if opts.Event, err = cfg.String("event", "value"); err != nil {
		return err
	}
	if opts.InsecureSkipVerify, err = cfg.Bool("insecure_skip_verify", false); err != nil {
		return err
	}
	rawTimeout, err := cfg.String("timeout", "")
	if err != nil {
		return err
	}
	opts.Timeout = defaultTimeout
	if rawTimeout != "" {
		d, err := time.ParseDuration(rawTimeout)
		if err != nil || d <= 0 {
			logger.Warn("Failed to parse timeout, using default.", "timeout", rawTimeout, "default", defaultTimeout)
		} else {
			opts.Timeout = d
		}
	}

	n.AddOutput("value", "Value", port.ControlValue)

	n.mu.Lock()
	n.opts = opts
	if cfg.Has("initial") {
		var initial any
		if initial, err = decodeInitial(cfg); err != nil {
			n.mu.Unlock()
			return err
		}
		n.latest, n.hasData = initial, true
	}
	n.mu.Unlock()

	n.Dirty().Touch()
	n.MarkInitialized()
	return nil
}

func decodeInitial(cfg node.Config) (any, error) {
	switch cfg["initial"].Type() {
	case cty.String:
		return cfg.String("initial", "")
	case cty.Bool:
		return cfg.Bool("initial", false)
	case cty.Number:
		return cfg.Number("initial", 0)
	}
	return nil, fmt.Errorf("%w: 'initial' must be a string, number or bool", node.ErrInvalidConfig)
}

// Reconnect drops the current connection. A new one is opened on the next
// Process call.
func (n *Node) Reconnect() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closeLocked()
	n.Dirty().Touch()
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}

	n.mu.Lock()
	needConn := n.Dirty().IsDirty()
	opts := n.opts
	n.mu.Unlock()

	if needConn {
		// Dialing blocks up to opts.Timeout; the value callback takes n.mu,
		// so the lock must not be held here.
		conn, err := n.dial(ctx, opts, n.receive)
		if err != nil {
			return fmt.Errorf("remote control %s: %w", opts.URL, err)
		}
		n.mu.Lock()
		n.closeLocked()
		n.conn = conn
		n.mu.Unlock()
		n.Dirty().Consume(ctx)
	}

	n.mu.Lock()
	latest, ok := n.latest, n.hasData
	n.mu.Unlock()
	if !ok {
		return nil
	}
	return ec.SetOutput("value", latest)
}

func (n *Node) receive(v any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latest, n.hasData = v, true
}

func (n *Node) closeLocked() {
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
}

func (n *Node) Cleanup(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		ctxlog.FromContext(ctx).Debug("Closing remote control connection.", "node", n.ID())
	}
	n.closeLocked()
}
