// Package print provides the PrintNode, a sink that writes whatever it
// receives to the log and to standard output.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
)

// TypeName is the registry name of the print node.
const TypeName = "PrintNode"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the print node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// Node accepts a single input whose data type comes from the "data_type"
// option, so it can be attached to any output.
type Node struct {
	*node.Base

	mu  sync.Mutex
	out io.Writer
}

// New creates an uninitialized print node writing to os.Stdout.
func New(id string) node.Node {
	return &Node{
		Base: node.NewBase(id, TypeName, node.Metadata{
			DisplayName: "Print",
			Category:    "Debug",
			Description: "Prints the value it receives",
			Tags:        []string{"debug", "sink"},
			Color:       "#CCCCCC",
			SupportsCPU: true,
			Compute:     "low",
			TypeCode:    "PR",
			Archetype:   "SINK",
		}),
		out: os.Stdout,
	}
}

// SetWriter redirects printed values.
func (n *Node) SetWriter(w io.Writer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.out = w
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	raw, err := cfg.String("data_type", port.MediaTexture.String())
	if err != nil {
		return err
	}
	dt, err := port.ParseDataType(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", node.ErrInvalidConfig, err)
	}
	n.AddInput("in", "In", dt)
	n.MarkInitialized()
	return nil
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	v, ok := ec.Input("in")
	if !ok {
		return fmt.Errorf("in: %w", node.ErrNoInput)
	}
	ctxlog.FromContext(ctx).Info("Printing input.", "node", n.ID(), "tick", ec.Tick(), "value", fmt.Sprintf("%+v", v))

	n.mu.Lock()
	defer n.mu.Unlock()
	if v == nil {
		fmt.Fprintf(n.out, "      [%d] %s = (null)\n", ec.Tick(), n.ID())
		return nil
	}
	fmt.Fprintf(n.out, "      [%d] %s = %+v\n", ec.Tick(), n.ID(), v)
	return nil
}

func (n *Node) Cleanup(ctx context.Context) {}
