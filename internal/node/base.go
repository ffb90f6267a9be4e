// internal/node/base.go
package node

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/port"
)

// Base carries the state shared by all variants: identity, metadata, port
// declarations, current port values and the dirty tracker. Variants embed a
// *Base and implement Initialize, Process and Cleanup themselves.
type Base struct {
	id       string
	typeName string

	mu          sync.RWMutex
	entityID    string
	meta        Metadata
	inputs      port.Set
	outputs     port.Set
	inValues    map[string]any
	outValues   map[string]any
	initialized bool

	dirty *Dirty
}

// NewBase returns a Base with no ports declared.
func NewBase(id, typeName string, meta Metadata) *Base {
	return &Base{
		id:        id,
		typeName:  typeName,
		meta:      meta,
		inValues:  make(map[string]any),
		outValues: make(map[string]any),
		dirty:     NewDirty(),
	}
}

func (b *Base) ID() string   { return b.id }
func (b *Base) Type() string { return b.typeName }

func (b *Base) EntityID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.entityID
}

func (b *Base) SetEntityID(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entityID = id
}

// Metadata returns a copy of the node's metadata.
func (b *Base) Metadata() Metadata {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := b.meta
	m.Tags = append([]string(nil), b.meta.Tags...)
	return m
}

// SetDisplayName updates the display name shown in listings.
func (b *Base) SetDisplayName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.meta.DisplayName = name
}

// AddInput declares an input port. Declaring a name twice appends a second
// port, which Initialize implementations must avoid.
func (b *Base) AddInput(name, label string, dt port.DataType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inputs = append(b.inputs, port.Port{Name: name, Label: label, Type: dt})
}

// AddOutput declares an output port.
func (b *Base) AddOutput(name, label string, dt port.DataType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outputs = append(b.outputs, port.Port{Name: name, Label: label, Type: dt})
}

func (b *Base) Inputs() port.Set {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append(port.Set(nil), b.inputs...)
}

func (b *Base) Outputs() port.Set {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append(port.Set(nil), b.outputs...)
}

func (b *Base) InputValue(name string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.inValues[name]
	return v, ok
}

func (b *Base) OutputValue(name string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.outValues[name]
	return v, ok
}

func (b *Base) SetInputValue(name string, v any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.inputs.Lookup(name); !ok {
		return fmt.Errorf("%w: node '%s' has no input '%s'", ErrUnknownPort, b.id, name)
	}
	b.inValues[name] = v
	return nil
}

func (b *Base) SetOutputValue(name string, v any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.outputs.Lookup(name); !ok {
		return fmt.Errorf("%w: node '%s' has no output '%s'", ErrUnknownPort, b.id, name)
	}
	b.outValues[name] = v
	return nil
}

func (b *Base) ClearInputs() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.inValues)
}

// ResetValues drops every input and output value. Port declarations stay.
func (b *Base) ResetValues() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.inValues)
	clear(b.outValues)
}

// MarkInitialized records that Initialize completed.
func (b *Base) MarkInitialized() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
}

// ClearInitialized undoes MarkInitialized. Nodes that must be initialized
// again after Cleanup call it from their Cleanup.
func (b *Base) ClearInitialized() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
}

func (b *Base) Initialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// Dirty returns the node's deferred-configuration tracker.
func (b *Base) Dirty() *Dirty { return b.dirty }
