package hclstage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/stage"
)

// Document is a thread-safe stage.Stage stored as HCL on disk.
type Document struct {
	mu    sync.RWMutex
	open  bool
	path  string
	roots []*prim
	index map[string]*prim
}

var _ stage.Stage = (*Document)(nil)

// New returns a Document with nothing open.
func New() *Document {
	return &Document{index: make(map[string]*prim)}
}

// Create starts an empty document at path and writes it immediately.
func (d *Document) Create(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.open = true
	d.path = path
	d.roots = nil
	d.index = make(map[string]*prim)
	if err := d.writeLocked(path); err != nil {
		d.open = false
		return err
	}
	ctxlog.FromContext(ctx).Debug("Stage created.", "path", path)
	return nil
}

// Open parses the document at path. On failure the previously open document,
// if any, stays open.
func (d *Document) Open(ctx context.Context, path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse stage file %s: %w", path, diags)
	}

	var root documentRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode stage file %s: %w", path, diags)
	}

	index := make(map[string]*prim)
	roots := make([]*prim, 0, len(root.Prims))
	for _, b := range root.Prims {
		p, err := fromBlock(b, "", index)
		if err != nil {
			return fmt.Errorf("stage file %s: %w", path, err)
		}
		roots = append(roots, p)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.path = path
	d.roots = roots
	d.index = index

	ctxlog.FromContext(ctx).Debug("Stage opened.", "path", path, "prims", len(index))
	return nil
}

func fromBlock(b *primBlock, parent string, index map[string]*prim) (*prim, error) {
	if b.Name == "" {
		return nil, fmt.Errorf("%w: empty prim name under '%s'", stage.ErrInvalidPath, parent)
	}
	if strings.Contains(b.Name, "/") {
		return nil, fmt.Errorf("%w: prim name '%s' under '%s' contains '/'", stage.ErrInvalidPath, b.Name, parent)
	}
	p := &prim{
		name:     b.Name,
		path:     stage.JoinPath(parent, b.Name),
		primType: b.Type,
	}
	if _, dup := index[p.path]; dup {
		return nil, fmt.Errorf("%w: duplicate prim '%s'", stage.ErrInvalidPath, p.path)
	}

	if b.Position != nil || b.Rotation != nil || b.Scale != nil {
		t := stage.IdentityTransform()
		if err := fill(t.Position[:], b.Position, "position", p.path); err != nil {
			return nil, err
		}
		if err := fill(t.Rotation[:], b.Rotation, "rotation", p.path); err != nil {
			return nil, err
		}
		if err := fill(t.Scale[:], b.Scale, "scale", p.path); err != nil {
			return nil, err
		}
		p.xform = &t
	}

	if b.Mesh != nil {
		p.mesh = &stage.MeshData{
			Points:  b.Mesh.Points,
			Normals: b.Mesh.Normals,
			Indices: b.Mesh.Indices,
		}
	}

	index[p.path] = p
	for _, cb := range b.Prims {
		child, err := fromBlock(cb, p.path, index)
		if err != nil {
			return nil, err
		}
		p.children = append(p.children, child)
	}
	return p, nil
}

// fill copies src into dst when src is set. A set attribute must have
// exactly len(dst) components.
func fill(dst, src []float64, attr, path string) error {
	if src == nil {
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("prim '%s': %s needs %d components, got %d", path, attr, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

func (d *Document) HasStage() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.open
}

// Path returns the file the document was opened from or last saved to.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

func (d *Document) Prims(ctx context.Context) ([]stage.Prim, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.open {
		return nil, stage.ErrNoStage
	}

	var out []stage.Prim
	var walk func(ps []*prim)
	walk = func(ps []*prim) {
		for _, p := range ps {
			out = append(out, stage.Prim{Name: p.name, Path: p.path, Type: p.primType, ChildCount: len(p.children)})
			walk(p.children)
		}
	}
	walk(d.roots)
	return out, nil
}

func (d *Document) Transform(ctx context.Context, path string) (stage.Transform, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, err := d.lookupLocked(path)
	if err != nil {
		return stage.Transform{}, err
	}
	if p.xform == nil {
		return stage.IdentityTransform(), nil
	}
	return *p.xform, nil
}

// Mesh returns the prim's geometry. Non-mesh prims, and mesh prims whose
// data is missing or inconsistent, yield MeshData with Valid false.
func (d *Document) Mesh(ctx context.Context, path string) (stage.MeshData, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, err := d.lookupLocked(path)
	if err != nil {
		return stage.MeshData{}, err
	}
	if p.primType != stage.MeshType || p.mesh == nil {
		return stage.MeshData{}, nil
	}

	md := stage.MeshData{
		Points:  append([]float64(nil), p.mesh.Points...),
		Normals: append([]float64(nil), p.mesh.Normals...),
		Indices: append([]int(nil), p.mesh.Indices...),
	}
	md.Valid = validMesh(md)
	return md, nil
}

func validMesh(md stage.MeshData) bool {
	if len(md.Points) == 0 || len(md.Points)%3 != 0 {
		return false
	}
	if len(md.Normals) != 0 && len(md.Normals) != len(md.Points) {
		return false
	}
	vertices := len(md.Points) / 3
	for _, i := range md.Indices {
		if i < 0 || i >= vertices {
			return false
		}
	}
	return true
}

func (d *Document) SetTransform(ctx context.Context, path string, t stage.Transform) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, err := d.lookupLocked(path)
	if err != nil {
		return err
	}
	p.xform = &t
	return nil
}

func (d *Document) AddPrim(ctx context.Context, path, primType string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return stage.ErrNoStage
	}
	segments, err := stage.SplitPath(path)
	if err != nil {
		return err
	}
	if _, exists := d.index[path]; exists {
		return fmt.Errorf("%w: '%s' already exists", stage.ErrInvalidPath, path)
	}

	name := segments[len(segments)-1]
	parentPath := path[:len(path)-len(name)-1]
	p := &prim{name: name, path: path, primType: primType}
	if parentPath == "" {
		d.roots = append(d.roots, p)
	} else {
		parent, ok := d.index[parentPath]
		if !ok {
			return fmt.Errorf("%w: parent '%s'", stage.ErrPrimNotFound, parentPath)
		}
		parent.children = append(parent.children, p)
	}
	d.index[path] = p
	return nil
}

// SetMesh attaches geometry to a prim and marks it as a mesh.
func (d *Document) SetMesh(ctx context.Context, path string, md stage.MeshData) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, err := d.lookupLocked(path)
	if err != nil {
		return err
	}
	p.primType = stage.MeshType
	p.mesh = &stage.MeshData{
		Points:  append([]float64(nil), md.Points...),
		Normals: append([]float64(nil), md.Normals...),
		Indices: append([]int(nil), md.Indices...),
	}
	return nil
}

func (d *Document) Save(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return stage.ErrNoStage
	}
	return d.writeLocked(d.path)
}

func (d *Document) SaveAs(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return stage.ErrNoStage
	}
	if err := d.writeLocked(path); err != nil {
		return err
	}
	d.path = path
	ctxlog.FromContext(ctx).Debug("Stage saved.", "path", path)
	return nil
}

func (d *Document) lookupLocked(path string) (*prim, error) {
	if !d.open {
		return nil, stage.ErrNoStage
	}
	p, ok := d.index[path]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", stage.ErrPrimNotFound, path)
	}
	return p, nil
}

func (d *Document) writeLocked(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create stage directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, encode(d.roots), 0o644); err != nil {
		return fmt.Errorf("failed to write stage file %s: %w", path, err)
	}
	return nil
}
