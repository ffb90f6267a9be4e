package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/node"
)

// ErrUnknownType is returned by Create for names that were never registered.
var ErrUnknownType = errors.New("unknown node type")

// Constructor builds a new, uninitialized node with the given identity.
type Constructor func(identity string) node.Node

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node constructors for a single application instance.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
	logger       *slog.Logger
}

// New creates and initializes a new Registry instance. A nil logger falls
// back to slog.Default().
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		constructors: make(map[string]Constructor),
		logger:       logger,
	}
}

// RegisterNodeType inserts or replaces the constructor for name.
func (r *Registry) RegisterNodeType(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.constructors[name]; exists {
		r.logger.Warn("Node type already registered, overwriting.", "type", name)
	} else {
		r.logger.Debug("Registering node type.", "type", name)
	}
	r.constructors[name] = ctor
}

// Create constructs a node of the named type.
func (r *Registry) Create(name, identity string) (node.Node, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownType, name)
	}
	return ctor(identity), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[name]
	return ok
}

// Types returns every registered name in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterModules registers each module in order.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}
