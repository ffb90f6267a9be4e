// Package objloader reads Wavefront OBJ geometry into scene meshes.
//
// Only the geometry statements are understood: v, vt, vn and f. Faces with
// more than three corners are fan-triangulated. Every other statement
// (materials, groups, smoothing) is ignored.
package objloader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/specialistvlad/stagegrid/internal/scene"
)

// ErrMalformed is returned for statements that cannot be parsed.
var ErrMalformed = errors.New("malformed obj")

// MaxLineLength is the longest statement Parse accepts, in bytes.
const MaxLineLength = 16 << 20

// Load reads the OBJ file at path. The mesh is named after the file.
func Load(path string) (scene.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("failed to open obj %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := Parse(f, name)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("failed to load obj %s: %w", path, err)
	}
	return m, nil
}

// corner is one face vertex as position/uv/normal indices, zero when absent.
type corner struct{ v, vt, vn int }

type parser struct {
	positions []scene.Vec3
	uvs       [][2]float64
	normals   []scene.Vec3

	mesh  scene.Mesh
	index map[corner]uint32
}

// Parse reads OBJ statements from r.
func Parse(r io.Reader, name string) (scene.Mesh, error) {
	p := &parser{
		mesh:  scene.Mesh{Name: name},
		index: make(map[corner]uint32),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		var err error
		switch fields[0] {
		case "v":
			var v scene.Vec3
			v, err = parseVec3(fields[1:])
			p.positions = append(p.positions, v)
		case "vn":
			var v scene.Vec3
			v, err = parseVec3(fields[1:])
			p.normals = append(p.normals, v)
		case "vt":
			var uv [2]float64
			uv, err = parseUV(fields[1:])
			p.uvs = append(p.uvs, uv)
		case "f":
			err = p.face(fields[1:])
		}
		if err != nil {
			return scene.Mesh{}, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return scene.Mesh{}, err
	}
	if len(p.mesh.Indices) == 0 {
		return scene.Mesh{}, fmt.Errorf("%w: no faces", ErrMalformed)
	}
	return p.mesh, nil
}

func (p *parser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("%w: face needs at least 3 vertices, got %d", ErrMalformed, len(refs))
	}
	ids := make([]uint32, len(refs))
	for i, ref := range refs {
		c, err := p.corner(ref)
		if err != nil {
			return err
		}
		ids[i] = p.vertex(c)
	}
	for i := 1; i+1 < len(ids); i++ {
		p.mesh.Indices = append(p.mesh.Indices, ids[0], ids[i], ids[i+1])
	}
	return nil
}

// corner resolves "v", "v/vt", "v//vn" or "v/vt/vn", including negative
// (relative) indices.
func (p *parser) corner(ref string) (corner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("%w: bad face vertex %q", ErrMalformed, ref)
	}
	var c corner
	var err error
	if c.v, err = resolve(parts[0], len(p.positions)); err != nil || c.v == 0 {
		return corner{}, fmt.Errorf("%w: bad position index in %q", ErrMalformed, ref)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolve(parts[1], len(p.uvs)); err != nil {
			return corner{}, fmt.Errorf("%w: bad uv index in %q", ErrMalformed, ref)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolve(parts[2], len(p.normals)); err != nil {
			return corner{}, fmt.Errorf("%w: bad normal index in %q", ErrMalformed, ref)
		}
	}
	return c, nil
}

func resolve(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("index %s out of range", s)
	}
	return n, nil
}

func (p *parser) vertex(c corner) uint32 {
	if id, ok := p.index[c]; ok {
		return id
	}
	v := scene.Vertex{
		Position: p.positions[c.v-1],
		Normal:   scene.Vec3{Y: 1},
	}
	if c.vn > 0 {
		v.Normal = p.normals[c.vn-1]
	}
	if c.vt > 0 {
		v.UV = p.uvs[c.vt-1]
	}
	id := uint32(len(p.mesh.Vertices))
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.index[c] = id
	return id
}

func parseVec3(f []string) (scene.Vec3, error) {
	if len(f) < 3 {
		return scene.Vec3{}, fmt.Errorf("%w: expected 3 components, got %d", ErrMalformed, len(f))
	}
	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return scene.Vec3{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		xyz[i] = v
	}
	return scene.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func parseUV(f []string) ([2]float64, error) {
	var uv [2]float64
	if len(f) < 1 {
		return uv, fmt.Errorf("%w: empty texture coordinate", ErrMalformed)
	}
	for i := 0; i < len(f) && i < 2; i++ {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return uv, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		uv[i] = v
	}
	return uv, nil
}
