// internal/port/value.go
package port

// Texture is the payload carried by Media/Texture ports. Passes records every
// shader or effect applied since the frame left its source.
type Texture struct {
	Source string
	Tick   uint64
	Passes []string
}

// WithPass returns a copy of t with pass appended.
func (t Texture) WithPass(pass string) Texture {
	passes := make([]string, len(t.Passes), len(t.Passes)+1)
	copy(passes, t.Passes)
	t.Passes = append(passes, pass)
	return t
}

// AudioBuffer is the payload carried by Media/Audio ports.
type AudioBuffer struct {
	Source string
	Tick   uint64
}

// MeshRef is the payload carried by Media/Mesh ports. It points into the
// scene store rather than carrying geometry.
type MeshRef struct {
	Path      string
	EntityIDs []uint32
	MeshIDs   []uint32
}
