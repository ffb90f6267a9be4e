package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/entityid"
	"github.com/specialistvlad/stagegrid/internal/inmemorystore"
	"github.com/specialistvlad/stagegrid/internal/inmemorytopology"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/nodestore"
	"github.com/specialistvlad/stagegrid/internal/registry"
	"github.com/specialistvlad/stagegrid/internal/scene"
	"github.com/specialistvlad/stagegrid/internal/topologystore"
)

const (
	defaultTypeCode  = "ND"
	defaultArchetype = "NODE"
)

// Observer is notified as ticks progress. Implementations must not block.
type Observer interface {
	NodeProcessed(typeName string, status node.Status, d time.Duration)
	TickCompleted(report *TickReport)
}

// Option configures a Graph.
type Option func(*Graph)

// WithScene makes the scene store available to nodes.
func WithScene(s *scene.Store) Option {
	return func(g *Graph) { g.scene = s }
}

// WithRenderer makes a rendering backend available to nodes.
func WithRenderer(r node.Renderer) Option {
	return func(g *Graph) { g.renderer = r }
}

// WithStage makes a stage importer available to nodes.
func WithStage(s node.StageImporter) Option {
	return func(g *Graph) { g.stage = s }
}

// WithObserver registers an observer for tick events.
func WithObserver(o Observer) Option {
	return func(g *Graph) { g.observer = o }
}

// WithStores replaces the default in-memory stores.
func WithStores(ts topologystore.Store, ns nodestore.Store) Option {
	return func(g *Graph) {
		g.topology = ts
		g.state = ns
	}
}

// Graph is a pipeline of nodes connected port to port.
type Graph struct {
	id       string
	registry *registry.Registry
	topology topologystore.Store
	state    nodestore.Store

	scene    *scene.Store
	renderer node.Renderer
	stage    node.StageImporter
	observer Observer

	mu   sync.Mutex
	tick uint64
}

// New creates an empty graph that creates nodes through reg.
func New(reg *registry.Registry, opts ...Option) *Graph {
	id, err := entityid.GeneratePipeline("PL", "MAIN")
	if err != nil {
		panic(fmt.Sprintf("pipeline id arguments rejected: %v", err))
	}
	g := &Graph{
		id:       id,
		registry: reg,
		topology: inmemorytopology.New(),
		state:    inmemorystore.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the graph's Pipeline-species entity ID.
func (g *Graph) ID() string { return g.id }

// AddNode creates, initializes and registers a node.
func (g *Graph) AddNode(ctx context.Context, typeName, identity string, cfg node.Config) (node.Node, error) {
	logger := ctxlog.FromContext(ctx).With("node", identity, "type", typeName)

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.topology.GetNode(ctx, identity); exists {
		return nil, fmt.Errorf("%w: '%s'", ErrDuplicateNode, identity)
	}

	n, err := g.registry.Create(typeName, identity)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = node.Config{}
	}
	if err := n.Initialize(ctx, cfg); err != nil {
		n.Cleanup(ctx)
		return nil, fmt.Errorf("failed to initialize node '%s': %w", identity, err)
	}
	n.SetEntityID(nodeEntityID(n.Metadata()))

	if err := g.topology.AddNode(ctx, n); err != nil {
		n.Cleanup(ctx)
		if errors.Is(err, topologystore.ErrNodeExists) {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateNode, identity)
		}
		return nil, err
	}

	logger.Debug("Node added.", "entity_id", n.EntityID(), "inputs", n.Inputs().Names(), "outputs", n.Outputs().Names())
	return n, nil
}

func nodeEntityID(meta node.Metadata) string {
	code, arch := meta.TypeCode, meta.Archetype
	if code == "" {
		code = defaultTypeCode
	}
	if arch == "" {
		arch = defaultArchetype
	}
	id, err := entityid.GenerateNode(code, arch)
	if err != nil {
		id, _ = entityid.GenerateNode(defaultTypeCode, defaultArchetype)
	}
	return id
}

// RemoveNode cleans up a node and drops it with all of its connections.
func (g *Graph) RemoveNode(ctx context.Context, identity string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.topology.GetNode(ctx, identity)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownNode, identity)
	}
	dropped, err := g.topology.RemoveNode(ctx, identity)
	if err != nil {
		return err
	}
	n.Cleanup(ctx)
	_ = g.state.Delete(ctx, identity)

	ctxlog.FromContext(ctx).Debug("Node removed.", "node", identity, "connections_dropped", len(dropped))
	return nil
}

// Node returns the node registered under identity.
func (g *Graph) Node(ctx context.Context, identity string) (node.Node, bool) {
	return g.topology.GetNode(ctx, identity)
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes(ctx context.Context) []node.Node {
	return g.topology.AllNodes(ctx)
}

// Connections returns every connection in insertion order.
func (g *Graph) Connections(ctx context.Context) []topologystore.Connection {
	return g.topology.Connections(ctx)
}

// NodeIDsBySpecies returns the identities of nodes whose entity ID belongs to
// species, in insertion order.
func (g *Graph) NodeIDsBySpecies(ctx context.Context, species entityid.Species) []string {
	var ids []string
	for _, n := range g.topology.AllNodes(ctx) {
		if entityid.IsSpecies(n.EntityID(), species) {
			ids = append(ids, n.ID())
		}
	}
	return ids
}

// Status returns the node's status in the most recent tick.
func (g *Graph) Status(ctx context.Context, identity string) (node.Status, error) {
	if _, ok := g.topology.GetNode(ctx, identity); !ok {
		return node.StatusPending, fmt.Errorf("%w: '%s'", ErrUnknownNode, identity)
	}
	return g.state.GetStatus(ctx, identity)
}

// Error returns the error the node failed with in the most recent tick.
func (g *Graph) Error(ctx context.Context, identity string) (error, error) {
	if _, ok := g.topology.GetNode(ctx, identity); !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownNode, identity)
	}
	return g.state.GetError(ctx, identity)
}

// Output returns the output port values of the node's last successful run.
func (g *Graph) Output(ctx context.Context, identity string) (map[string]any, error) {
	if _, ok := g.topology.GetNode(ctx, identity); !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownNode, identity)
	}
	return g.state.GetOutput(ctx, identity)
}

// Cleanup cleans up every node.
func (g *Graph) Cleanup(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, n := range g.topology.AllNodes(ctx) {
		n.Cleanup(ctx)
	}
	ctxlog.FromContext(ctx).Debug("Graph cleaned up.", "pipeline", g.id)
}
