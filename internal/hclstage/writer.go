package hclstage

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// encode renders the prim tree as HCL.
func encode(roots []*prim) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, p := range roots {
		if i > 0 {
			body.AppendNewline()
		}
		writePrim(body, p)
	}
	return f.Bytes()
}

func writePrim(parent *hclwrite.Body, p *prim) {
	b := parent.AppendNewBlock("prim", []string{p.name}).Body()
	if p.primType != "" {
		b.SetAttributeValue("type", cty.StringVal(p.primType))
	}
	if p.xform != nil {
		b.SetAttributeValue("position", floats(p.xform.Position[:]))
		b.SetAttributeValue("rotation", floats(p.xform.Rotation[:]))
		b.SetAttributeValue("scale", floats(p.xform.Scale[:]))
	}
	if p.mesh != nil {
		mb := b.AppendNewBlock("mesh", nil).Body()
		mb.SetAttributeValue("points", floats(p.mesh.Points))
		if len(p.mesh.Normals) > 0 {
			mb.SetAttributeValue("normals", floats(p.mesh.Normals))
		}
		mb.SetAttributeValue("indices", ints(p.mesh.Indices))
	}
	for _, c := range p.children {
		writePrim(b, c)
	}
}

func floats(vs []float64) cty.Value {
	if len(vs) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		out[i] = cty.NumberFloatVal(v)
	}
	return cty.ListVal(out)
}

func ints(vs []int) cty.Value {
	if len(vs) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		out[i] = cty.NumberIntVal(int64(v))
	}
	return cty.ListVal(out)
}
