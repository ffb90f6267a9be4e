// Package stagesync mirrors an external stage document into the scene store.
//
// Import is one-directional and append-only: every prim becomes a scene
// entity keyed by its path, and mesh prims with usable geometry also become
// scene meshes. Keys that already exist in the store are left alone, so
// importing the same document twice creates nothing the second time.
//
// Transform changes made through the Synchronizer are written back to the
// stage for entities that came from it.
//
// Imports are serialized by the Synchronizer's own mutex. The scene store's
// lock is only ever taken inside individual store calls, never while the
// stage is being read or written.
package stagesync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/scene"
	"github.com/specialistvlad/stagegrid/internal/stage"
)

// ErrUnknownEntity is returned when a scene entity id does not resolve.
var ErrUnknownEntity = errors.New("unknown scene entity")

// Synchronizer connects one stage document to one scene store.
type Synchronizer struct {
	stage stage.Stage
	scene *scene.Store

	mu sync.Mutex
}

var _ node.StageImporter = (*Synchronizer)(nil)

// New creates a Synchronizer.
func New(st stage.Stage, sc *scene.Store) *Synchronizer {
	return &Synchronizer{stage: st, scene: sc}
}

// ImportStage opens the document at path and creates scene entities for its
// prims. It returns the number of entities created.
func (s *Synchronizer) ImportStage(ctx context.Context, path string) (int, error) {
	logger := ctxlog.FromContext(ctx).With("stage", path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stage.Open(ctx, path); err != nil {
		logger.Error("Failed to open stage.", "error", err)
		return 0, fmt.Errorf("failed to open stage %s: %w", path, err)
	}
	prims, err := s.stage.Prims(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list prims of %s: %w", path, err)
	}

	created, meshes := 0, 0
	for _, p := range prims {
		if _, exists := s.scene.EntityID(p.Path); exists {
			logger.Debug("Prim already imported, skipping.", "prim", p.Path)
			continue
		}

		xf, err := s.stage.Transform(ctx, p.Path)
		if err != nil {
			logger.Warn("Failed to read prim transform, skipping.", "prim", p.Path, "error", err)
			continue
		}

		var meshID uint32
		if p.Type == stage.MeshType {
			md, err := s.stage.Mesh(ctx, p.Path)
			if err != nil {
				logger.Warn("Failed to read prim mesh.", "prim", p.Path, "error", err)
			} else if md.Valid {
				meshID = s.scene.AddMesh(ToSceneMesh(p.Name, md))
				meshes++
			}
		}

		s.scene.AddKeyedMeshEntity(p.Path, importTransform(xf), meshID)
		created++
	}

	logger.Info("Stage imported.", "prims", len(prims), "entities", created, "meshes", meshes)
	return created, nil
}

// SetTransform updates an entity's transform in the store and, when the
// entity was imported from the stage, writes it back to its prim.
func (s *Synchronizer) SetTransform(ctx context.Context, id uint32, t scene.Transform) error {
	if !s.scene.SetTransform(id, t) {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	e, ok := s.scene.Entity(id)
	if !ok || e.Key == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stage.HasStage() {
		return nil
	}
	if err := s.stage.SetTransform(ctx, e.Key, ToStageTransform(t)); err != nil {
		return fmt.Errorf("failed to write transform of %s back to stage: %w", e.Key, err)
	}
	return nil
}

// Save writes the stage document in place.
func (s *Synchronizer) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage.Save(ctx)
}

// SaveAs writes the stage document to a new path.
func (s *Synchronizer) SaveAs(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage.SaveAs(ctx, path)
}
