// Package env_vars provides the EnvNode, which exposes one environment
// variable as a control value.
package env_vars

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// TypeName is the registry name of the environment node.
const TypeName = "EnvNode"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the environment node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node reads its variable every tick, so changes made while the pipeline
// runs are picked up. An unset variable yields the "default" option.
type Node struct {
	*node.Base

	mu       sync.Mutex
	variable string
	fallback string
	lookup   func(string) (string, bool)
}

// New creates an uninitialized environment node.
func New(id string) node.Node {
	return &Node{
		Base: node.NewBase(id, TypeName, node.Metadata{
			DisplayName: "Environment",
			Category:    "Control",
			Description: "Reads a process environment variable",
			Tags:        []string{"env", "control"},
			Color:       "#888888",
			SupportsCPU: true,
			Compute:     "low",
			TypeCode:    "EV",
			Archetype:   "VAR",
		}),
		lookup: os.LookupEnv,
	}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	variable, err := cfg.String("variable", "")
	if err != nil {
		return err
	}
	if variable == "" {
		return fmt.Errorf("%w: 'variable' is required", node.ErrInvalidConfig)
	}
	fallback, err := cfg.String("default", "")
	if err != nil {
		return err
	}

	n.AddOutput("value", "Value", port.ControlValue)
	n.mu.Lock()
	n.variable, n.fallback = variable, fallback
	n.mu.Unlock()
	n.MarkInitialized()
	return nil
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}
	n.mu.Lock()
	variable, fallback := n.variable, n.fallback
	n.mu.Unlock()

	value, ok := n.lookup(variable)
	if !ok {
		ctxlog.FromContext(ctx).Debug("Environment variable not set, using default.", "node", n.ID(), "variable", variable)
		value = fallback
	}
	return ec.SetOutput("value", value)
}

func (n *Node) Cleanup(ctx context.Context) {}
