// Package hclstage is a stage.Stage backed by an HCL document.
//
// A document is a tree of nested `prim` blocks:
//
//	prim "world" {
//	  type = "Xform"
//
//	  prim "floor" {
//	    type     = "Mesh"
//	    position = [0, -1, 0]
//	    rotation = [1, 0, 0, 0]
//	    scale    = [10, 1, 10]
//
//	    mesh {
//	      points  = [0, 0, 0, 1, 0, 0, 0, 0, 1]
//	      normals = [0, 1, 0, 0, 1, 0, 0, 1, 0]
//	      indices = [0, 1, 2]
//	    }
//	  }
//	}
//
// Prims are addressed by absolute path ("/world/floor"). Documents are read
// with hclparse and gohcl and written back with hclwrite.
package hclstage
