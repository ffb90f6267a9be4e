// Package threedmodel provides the ThreeDModelNode, which brings 3D content
// into the scene store.
//
// Stage documents are handed to the stage importer. Wavefront OBJ files are
// parsed directly and become one keyed mesh entity.
package threedmodel

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/node"
	"github.com/specialistvlad/stagegrid/internal/objloader"
	"github.com/specialistvlad/stagegrid/internal/port"
	"github.com/specialistvlad/stagegrid/internal/registry"
	"github.com/specialistvlad/stagegrid/internal/scene"
)

// TypeName is the registry name of the model node.
const TypeName = "ThreeDModelNode"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the model node type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNodeType(TypeName, New)
}

// IsStagePath reports whether path names a stage document.
func IsStagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".usd", ".usda", ".usdc", ".usdz":
		return true
	}
	return false
}

// Node loads model_path when it changes and emits a port.MeshRef to what it
// loaded every tick.
type Node struct {
	*node.Base

	mu    sync.Mutex
	path  string
	ref   *port.MeshRef
	owned *scene.Store
}

// New creates an uninitialized model node.
func New(id string) node.Node {
	return &Node{Base: node.NewBase(id, TypeName, node.Metadata{
		DisplayName: "3D Model",
		Category:    "Input",
		Description: "Loads a stage document or OBJ mesh into the scene",
		Tags:        []string{"3d", "mesh", "model", "stage"},
		Color:       "#66CCCC",
		SupportsCPU: true,
		Compute:     "low",
		MemoryMB:    128,
		TypeCode:    "MD",
		Archetype:   "MESH",
	})}
}

func (n *Node) Initialize(ctx context.Context, cfg node.Config) error {
	path, err := cfg.String("model_path", "")
	if err != nil {
		return err
	}
	n.AddOutput("visual_out", "Visual Output", port.MediaMesh)
	n.SetModelPath(path)
	n.MarkInitialized()
	return nil
}

// SetModelPath changes the model to load on the next Process call.
func (n *Node) SetModelPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == path {
		return
	}
	n.path = path
	n.Dirty().Touch()
}

// ModelPath returns the configured model.
func (n *Node) ModelPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *Node) Process(ctx context.Context, ec node.Context) error {
	if !n.Initialized() {
		return node.ErrNotInitialized
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Dirty().IsDirty() {
		ref, err := n.loadLocked(ctx, ec)
		if err != nil {
			return err
		}
		n.ref = ref
		n.Dirty().Consume(ctx)
	}
	if n.ref == nil {
		return nil
	}
	return ec.SetOutput("visual_out", *n.ref)
}

func (n *Node) loadLocked(ctx context.Context, ec node.Context) (*port.MeshRef, error) {
	logger := ctxlog.FromContext(ctx).With("node", n.ID(), "path", n.path)

	store := ec.Scene()
	if store == nil {
		return nil, node.ErrSceneUnavailable
	}
	if n.path == "" {
		return nil, fmt.Errorf("model_path: %w", node.ErrEmptyPath)
	}

	if IsStagePath(n.path) {
		importer := ec.Stage()
		if importer == nil {
			return nil, node.ErrStageUnavailable
		}
		created, err := importer.ImportStage(ctx, n.path)
		if err != nil {
			return nil, err
		}
		logger.Info("Stage imported into scene.", "entities", created)
		n.removeOwnedLocked()
		return &port.MeshRef{Path: n.path}, nil
	}

	if strings.ToLower(filepath.Ext(n.path)) != ".obj" {
		return nil, fmt.Errorf("%w: unsupported model format '%s'", node.ErrInvalidConfig, filepath.Ext(n.path))
	}

	if n.ref != nil && n.ref.Path == n.path && n.owned == store {
		logger.Debug("Model unchanged since last successful load.")
		ref := *n.ref
		return &ref, nil
	}
	if id, ok := store.EntityID(n.path); ok {
		e, _ := store.Entity(id)
		logger.Debug("Model already in scene.", "entity", id)
		n.removeOwnedLocked()
		return &port.MeshRef{Path: n.path, EntityIDs: []uint32{id}, MeshIDs: []uint32{e.MeshID}}, nil
	}

	mesh, err := objloader.Load(n.path)
	if err != nil {
		return nil, err
	}
	meshID := store.AddMesh(mesh)
	entityID := store.AddKeyedMeshEntity(n.path, scene.IdentityTransform(), meshID)
	n.removeOwnedLocked()
	n.owned = store
	logger.Info("Mesh loaded into scene.", "entity", entityID, "mesh", meshID, "vertices", len(mesh.Vertices))
	return &port.MeshRef{Path: n.path, EntityIDs: []uint32{entityID}, MeshIDs: []uint32{meshID}}, nil
}

// removeOwnedLocked drops the entity this node created for its previous OBJ
// model. Stage entities belong to the stage and are left alone. It is only
// called once the replacement has loaded, so a failed reload keeps the
// previous model in the scene.
func (n *Node) removeOwnedLocked() {
	if n.owned == nil || n.ref == nil {
		return
	}
	for _, id := range n.ref.EntityIDs {
		n.owned.RemoveEntity(id)
	}
	n.owned = nil
}

func (n *Node) Cleanup(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.removeOwnedLocked()
	n.ref = nil
}
