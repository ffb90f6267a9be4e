// internal/scene/types.go
package scene

// Vec3 is a 3-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Quat is a rotation quaternion stored as w, x, y, z.
type Quat struct {
	W, X, Y, Z float64
}

// Transform places an entity relative to its parent.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// IdentityTransform returns the transform that leaves geometry unchanged.
func IdentityTransform() Transform {
	return Transform{
		Rotation: Quat{W: 1},
		Scale:    Vec3{X: 1, Y: 1, Z: 1},
	}
}

// StereoMode describes how an entity's texture is presented to each eye.
type StereoMode int

const (
	Mono StereoMode = iota
	StereoSBS
	StereoTB
	LeftEye
	RightEye
)

func (m StereoMode) String() string {
	switch m {
	case Mono:
		return "mono"
	case StereoSBS:
		return "stereo_sbs"
	case StereoTB:
		return "stereo_tb"
	case LeftEye:
		return "left_eye"
	case RightEye:
		return "right_eye"
	default:
		return "unknown"
	}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Semantics is the descriptive block attached to every entity.
type Semantics struct {
	Label     string
	Category  string
	Tags      []string
	Bounds    AABB
	Stereo    StereoMode
	IPDOffset float64
}

// Entity is one placed object in the scene.
type Entity struct {
	ID uint32
	// Key is the external correlation key, empty when the entity was added
	// without one.
	Key        string
	Transform  Transform
	MeshID     uint32
	MaterialID uint32
	// TextureID is the legacy single-texture reference used by video entities.
	TextureID uint32
	Children  []uint32
	Semantics Semantics
}

func (e *Entity) clone() Entity {
	c := *e
	c.Children = append([]uint32(nil), e.Children...)
	c.Semantics.Tags = append([]string(nil), e.Semantics.Tags...)
	return c
}

// Vertex is one mesh vertex.
type Vertex struct {
	Position Vec3
	Normal   Vec3
	UV       [2]float64
}

// Mesh is an indexed triangle list.
type Mesh struct {
	ID       uint32
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

func (m *Mesh) clone() Mesh {
	c := *m
	c.Vertices = append([]Vertex(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	return c
}

// Material is a simple metallic/roughness surface.
type Material struct {
	ID        uint32
	BaseColor [4]float64
	TextureID uint32
	Roughness float64
	Metallic  float64
}

// LightType distinguishes point from directional lights.
type LightType int

const (
	PointLight LightType = iota
	DirectionalLight
)

// Light is a scene light source.
type Light struct {
	ID        uint32
	Position  Vec3
	Color     Vec3
	Intensity float64
	Type      LightType
}

// RelationType is the kind of a semantic relation.
type RelationType int

const (
	SupportedBy RelationType = iota
	Near
	Facing
	Inside
	PartOf
)

func (r RelationType) String() string {
	switch r {
	case SupportedBy:
		return "supported_by"
	case Near:
		return "near"
	case Facing:
		return "facing"
	case Inside:
		return "inside"
	case PartOf:
		return "part_of"
	default:
		return "unknown"
	}
}

// DefaultRelationWeight is the weight AddDefaultRelation uses.
const DefaultRelationWeight = 1.0

// Relation is a directed, typed, weighted edge between two entities.
type Relation struct {
	Source uint32
	Target uint32
	Type   RelationType
	Weight float64
}

// Stats is a point-in-time count of every collection in the store.
type Stats struct {
	Entities  int
	Meshes    int
	Materials int
	Lights    int
	Relations int
}
