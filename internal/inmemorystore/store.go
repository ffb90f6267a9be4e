package inmemorystore

import (
	"context"
	"maps"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/nodestore"
)

// Store is an in-memory implementation of nodestore.Store.
//
// The store maintains three independent sync.Maps:
//   - states: node identity to node.Status
//   - outputs: node identity to map[string]any of port values
//   - errors: node identity to the error of the current tick
type Store struct {
	states  sync.Map
	outputs sync.Map
	errors  sync.Map
}

// New creates a new, empty in-memory node state store.
func New() nodestore.Store {
	return &Store{}
}

// SetStatus updates the execution status of a specific node.
func (s *Store) SetStatus(ctx context.Context, id string, status node.Status) error {
	s.states.Store(id, status)
	return nil
}

// GetStatus retrieves the execution status of a specific node.
// If a status has not been set, it returns StatusPending.
func (s *Store) GetStatus(ctx context.Context, id string) (node.Status, error) {
	status, ok := s.states.Load(id)
	if !ok {
		return node.StatusPending, nil
	}
	return status.(node.Status), nil
}

// SetOutput records a copy of the output of a node.
func (s *Store) SetOutput(ctx context.Context, id string, output map[string]any) error {
	s.outputs.Store(id, maps.Clone(output))
	return nil
}

// GetOutput retrieves a copy of the recorded output of a node.
func (s *Store) GetOutput(ctx context.Context, id string) (map[string]any, error) {
	output, ok := s.outputs.Load(id)
	if !ok {
		return nil, nil
	}
	return maps.Clone(output.(map[string]any)), nil
}

// SetError records the failure error of a node.
func (s *Store) SetError(ctx context.Context, id string, nodeErr error) error {
	s.errors.Store(id, nodeErr)
	return nil
}

// GetError retrieves the recorded error of a failed node.
func (s *Store) GetError(ctx context.Context, id string) (error, error) {
	err, ok := s.errors.Load(id)
	if !ok {
		return nil, nil
	}
	return err.(error), nil
}

// Reset clears statuses and errors.
func (s *Store) Reset(ctx context.Context) error {
	s.states.Clear()
	s.errors.Clear()
	return nil
}

// Delete removes every record of a node.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.states.Delete(id)
	s.outputs.Delete(id)
	s.errors.Delete(id)
	return nil
}
