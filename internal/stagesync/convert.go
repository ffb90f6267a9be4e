package stagesync

import (
	"github.com/specialistvlad/stagegrid/internal/scene"
	"github.com/specialistvlad/stagegrid/internal/stage"
)

var defaultNormal = scene.Vec3{X: 0, Y: 1, Z: 0}

// ToSceneMesh converts flat stage geometry into scene vertices. Missing
// normals default to +Y and every UV is zero.
func ToSceneMesh(name string, md stage.MeshData) scene.Mesh {
	count := len(md.Points) / 3
	hasNormals := len(md.Normals) == len(md.Points)

	m := scene.Mesh{
		Name:     name,
		Vertices: make([]scene.Vertex, count),
		Indices:  make([]uint32, len(md.Indices)),
	}
	for i := 0; i < count; i++ {
		v := scene.Vertex{
			Position: scene.Vec3{X: md.Points[i*3], Y: md.Points[i*3+1], Z: md.Points[i*3+2]},
			Normal:   defaultNormal,
		}
		if hasNormals {
			v.Normal = scene.Vec3{X: md.Normals[i*3], Y: md.Normals[i*3+1], Z: md.Normals[i*3+2]}
		}
		m.Vertices[i] = v
	}
	for i, idx := range md.Indices {
		m.Indices[i] = uint32(idx)
	}
	return m
}

// importTransform converts a prim transform for the scene. Prim scale is not
// carried over; imported entities start at unit scale.
func importTransform(t stage.Transform) scene.Transform {
	return scene.Transform{
		Position: scene.Vec3{X: t.Position[0], Y: t.Position[1], Z: t.Position[2]},
		Rotation: scene.Quat{W: t.Rotation[0], X: t.Rotation[1], Y: t.Rotation[2], Z: t.Rotation[3]},
		Scale:    scene.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// ToStageTransform converts a scene transform for writing to a prim.
func ToStageTransform(t scene.Transform) stage.Transform {
	return stage.Transform{
		Position: [3]float64{t.Position.X, t.Position.Y, t.Position.Z},
		Rotation: [4]float64{t.Rotation.W, t.Rotation.X, t.Rotation.Y, t.Rotation.Z},
		Scale:    [3]float64{t.Scale.X, t.Scale.Y, t.Scale.Z},
	}
}
