// internal/scene/store.go
package scene

import (
	"log/slog"
	"slices"
	"sync"
)

// Store is the thread-safe scene entity store.
type Store struct {
	logger *slog.Logger

	mu        sync.Mutex
	entities  map[uint32]*Entity
	keys      map[string]uint32
	meshes    map[uint32]*Mesh
	materials map[uint32]*Material
	lights    []Light
	relations []Relation

	nextEntity   uint32
	nextMesh     uint32
	nextMaterial uint32
	nextLight    uint32
}

// New creates an empty store. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:       logger.With("component", "scene"),
		entities:     make(map[uint32]*Entity),
		keys:         make(map[string]uint32),
		meshes:       make(map[uint32]*Mesh),
		materials:    make(map[uint32]*Material),
		nextEntity:   1,
		nextMesh:     1,
		nextMaterial: 1,
		nextLight:    1,
	}
}

// AddEntity adds an entity with no geometry and returns its id.
func (s *Store) AddEntity(t Transform) uint32 {
	return s.add("", Entity{Transform: t})
}

// AddMeshEntity adds an entity that renders the given mesh.
func (s *Store) AddMeshEntity(t Transform, meshID uint32) uint32 {
	return s.add("", Entity{Transform: t, MeshID: meshID})
}

// AddVideoEntity adds an entity that renders a mesh with a video texture.
func (s *Store) AddVideoEntity(t Transform, meshID, textureID uint32) uint32 {
	return s.add("", Entity{Transform: t, MeshID: meshID, TextureID: textureID})
}

// AddKeyedEntity is AddEntity with an external key. If the key is already
// present, the existing id is returned and the store is left unchanged.
func (s *Store) AddKeyedEntity(key string, t Transform) uint32 {
	return s.add(key, Entity{Transform: t})
}

// AddKeyedMeshEntity is AddMeshEntity with an external key.
func (s *Store) AddKeyedMeshEntity(key string, t Transform, meshID uint32) uint32 {
	return s.add(key, Entity{Transform: t, MeshID: meshID})
}

// AddKeyedVideoEntity is AddVideoEntity with an external key.
func (s *Store) AddKeyedVideoEntity(key string, t Transform, meshID, textureID uint32) uint32 {
	return s.add(key, Entity{Transform: t, MeshID: meshID, TextureID: textureID})
}

func (s *Store) add(key string, e Entity) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if id, ok := s.keys[key]; ok {
			s.logger.Debug("Entity key already present, keeping existing entity.", "key", key, "id", id)
			return id
		}
	}

	e.ID = s.nextEntity
	s.nextEntity++
	e.Key = key
	s.entities[e.ID] = &e
	if key != "" {
		s.keys[key] = e.ID
	}
	s.logger.Debug("Entity added.", "id", e.ID, "key", key, "mesh", e.MeshID)
	return e.ID
}

// EntityID looks up the entity registered under an external key.
func (s *Store) EntityID(key string) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[key]
	return id, ok
}

// Entity returns a copy of the entity.
func (s *Store) Entity(id uint32) (Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[id]
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// Entities returns copies of every entity in ascending id order.
func (s *Store) Entities() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint32, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Entity, len(ids))
	for i, id := range ids {
		out[i] = s.entities[id].clone()
	}
	return out
}

// RemoveEntity removes an entity, its key mapping, its appearances in other
// entities' children and every relation that touches it.
func (s *Store) RemoveEntity(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

// RemoveEntityByKey removes the entity registered under key.
func (s *Store) RemoveEntityByKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[key]
	if !ok {
		return false
	}
	return s.removeLocked(id)
}

func (s *Store) removeLocked(id uint32) bool {
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	if e.Key != "" {
		delete(s.keys, e.Key)
	}
	delete(s.entities, id)

	for _, other := range s.entities {
		other.Children = slices.DeleteFunc(other.Children, func(c uint32) bool { return c == id })
	}
	before := len(s.relations)
	s.relations = slices.DeleteFunc(s.relations, func(r Relation) bool {
		return r.Source == id || r.Target == id
	})
	s.logger.Debug("Entity removed.", "id", id, "key", e.Key, "prunedRelations", before-len(s.relations))
	return true
}

// SetTransform replaces an entity's transform.
func (s *Store) SetTransform(id uint32, t Transform) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	e.Transform = t
	return true
}

// SetSemantics replaces an entity's semantic block.
func (s *Store) SetSemantics(id uint32, sem Semantics) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	sem.Tags = append([]string(nil), sem.Tags...)
	e.Semantics = sem
	return true
}

// SetMaterial assigns a material to an entity. The material must exist.
func (s *Store) SetMaterial(id, materialID uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	if _, ok := s.materials[materialID]; !ok {
		return false
	}
	e.MaterialID = materialID
	return true
}

// AddChild appends child to parent's children. Both must exist and differ,
// and a child is listed at most once.
func (s *Store) AddChild(parent, child uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if parent == child {
		return false
	}
	p, ok := s.entities[parent]
	if !ok {
		return false
	}
	if _, ok := s.entities[child]; !ok {
		return false
	}
	if slices.Contains(p.Children, child) {
		return false
	}
	p.Children = append(p.Children, child)
	return true
}

// AddMesh stores a mesh and returns its id. Any ID set on m is ignored.
func (s *Store) AddMesh(m Mesh) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := m.clone()
	c.ID = s.nextMesh
	s.nextMesh++
	s.meshes[c.ID] = &c
	s.logger.Debug("Mesh added.", "id", c.ID, "name", c.Name, "vertices", len(c.Vertices), "indices", len(c.Indices))
	return c.ID
}

// Mesh returns a copy of the mesh. Id 0 is never present.
func (s *Store) Mesh(id uint32) (Mesh, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meshes[id]
	if !ok {
		return Mesh{}, false
	}
	return m.clone(), true
}

// AddMaterial stores a material and returns its id.
func (s *Store) AddMaterial(m Material) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextMaterial
	s.nextMaterial++
	s.materials[m.ID] = &m
	return m.ID
}

// Material returns the material with the given id.
func (s *Store) Material(id uint32) (Material, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok {
		return Material{}, false
	}
	return *m, true
}

// AddLight stores a light and returns its id.
func (s *Store) AddLight(l Light) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.nextLight
	s.nextLight++
	s.lights = append(s.lights, l)
	return l.ID
}

// Lights returns every light in ascending id order.
func (s *Store) Lights() []Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lights)
}

// AddRelation records a relation between two existing entities. The weight
// is stored as given.
func (s *Store) AddRelation(src, dst uint32, typ RelationType, weight float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[src]; !ok {
		return false
	}
	if _, ok := s.entities[dst]; !ok {
		return false
	}
	s.relations = append(s.relations, Relation{Source: src, Target: dst, Type: typ, Weight: weight})
	return true
}

// AddDefaultRelation records a relation with DefaultRelationWeight.
func (s *Store) AddDefaultRelation(src, dst uint32, typ RelationType) bool {
	return s.AddRelation(src, dst, typ, DefaultRelationWeight)
}

// Relations returns every relation in insertion order.
func (s *Store) Relations() []Relation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.relations)
}

// RelationsOf returns the relations whose source or target is id.
func (s *Store) RelationsOf(id uint32) []Relation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Relation
	for _, r := range s.relations {
		if r.Source == id || r.Target == id {
			out = append(out, r)
		}
	}
	return out
}

// Clear removes every entity, key mapping and relation. Meshes, materials and
// lights are kept, and id counters keep counting from where they were.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entities)
	clear(s.keys)
	s.relations = nil
	s.logger.Debug("Scene cleared.")
}

// Stats returns the current collection sizes.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Entities:  len(s.entities),
		Meshes:    len(s.meshes),
		Materials: len(s.materials),
		Lights:    len(s.lights),
		Relations: len(s.relations),
	}
}
