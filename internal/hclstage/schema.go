package hclstage

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/stagegrid/internal/stage"
)

// documentRoot is used to decode the top level of a stage file.
type documentRoot struct {
	Prims  []*primBlock `hcl:"prim,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type primBlock struct {
	Name     string       `hcl:"name,label"`
	Type     string       `hcl:"type,optional"`
	Position []float64    `hcl:"position,optional"`
	Rotation []float64    `hcl:"rotation,optional"`
	Scale    []float64    `hcl:"scale,optional"`
	Mesh     *meshBlock   `hcl:"mesh,block"`
	Prims    []*primBlock `hcl:"prim,block"`
}

type meshBlock struct {
	Points  []float64 `hcl:"points"`
	Normals []float64 `hcl:"normals,optional"`
	Indices []int     `hcl:"indices"`
}

// prim is the in-memory form of a primBlock.
type prim struct {
	name     string
	path     string
	primType string
	// xform is nil when the prim declares no transform attributes.
	xform    *stage.Transform
	mesh     *stage.MeshData
	children []*prim
}
