// Package stage defines the boundary to an external hierarchical scene
// document (a "stage"): a tree of named prims, each with an optional
// transform and, for mesh prims, geometry.
//
// Every operation reports failure as an error; an absent document or a path
// that does not resolve never panics.
package stage

import (
	"context"
	"errors"
)

var (
	// ErrNoStage is returned by operations that need an open document.
	ErrNoStage = errors.New("no stage is open")
	// ErrPrimNotFound is returned when a prim path does not resolve.
	ErrPrimNotFound = errors.New("prim not found")
	// ErrInvalidPath is returned for malformed prim paths.
	ErrInvalidPath = errors.New("invalid prim path")
)

// MeshType is the prim type tag of mesh prims.
const MeshType = "Mesh"

// Prim is one entry of the flattened prim list.
type Prim struct {
	Name string
	// Path is the absolute prim path, e.g. "/world/cam1".
	Path       string
	Type       string
	ChildCount int
}

// Transform is a prim's local transform. Rotation is a quaternion stored as
// w, x, y, z.
type Transform struct {
	Position [3]float64
	Rotation [4]float64
	Scale    [3]float64
}

// IdentityTransform returns the transform of a prim that declares none.
func IdentityTransform() Transform {
	return Transform{
		Rotation: [4]float64{1, 0, 0, 0},
		Scale:    [3]float64{1, 1, 1},
	}
}

// MeshData is the raw geometry of a mesh prim. Points and Normals are flat
// x, y, z triples. Valid is false when the prim has no usable geometry.
type MeshData struct {
	Points  []float64
	Normals []float64
	Indices []int
	Valid   bool
}

// Stage is the stage collaborator contract.
type Stage interface {
	// Create starts a new, empty document at path and writes it.
	Create(ctx context.Context, path string) error
	// Open loads the document at path, replacing any open one.
	Open(ctx context.Context, path string) error
	HasStage() bool

	// Prims returns every prim in pre-order.
	Prims(ctx context.Context) ([]Prim, error)
	// Transform returns the prim's transform, or the identity if it has none.
	Transform(ctx context.Context, path string) (Transform, error)
	Mesh(ctx context.Context, path string) (MeshData, error)

	SetTransform(ctx context.Context, path string, t Transform) error
	// AddPrim creates a prim. Its parent must already exist.
	AddPrim(ctx context.Context, path, primType string) error

	Save(ctx context.Context) error
	SaveAs(ctx context.Context, path string) error
}
