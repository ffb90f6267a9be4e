// internal/scene/store_test.go
package scene

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_KeyedEntityIsDeduplicated(t *testing.T) {
	s := New(nil)

	first := s.AddKeyedEntity("/world/cam1", IdentityTransform())
	second := s.AddKeyedEntity("/world/cam1", Transform{Position: Vec3{X: 5}})
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.Stats().Entities)

	e, ok := s.Entity(first)
	require.True(t, ok)
	assert.Equal(t, IdentityTransform(), e.Transform, "colliding add must not overwrite")

	require.True(t, s.RemoveEntityByKey("/world/cam1"))
	_, ok = s.EntityID("/world/cam1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Stats().Entities)
	assert.False(t, s.RemoveEntityByKey("/world/cam1"))
}

func TestStore_EntityIDsAreNeverReused(t *testing.T) {
	s := New(nil)
	a := s.AddEntity(IdentityTransform())
	b := s.AddEntity(IdentityTransform())
	require.True(t, s.RemoveEntity(b))
	c := s.AddEntity(IdentityTransform())

	assert.Equal(t, uint32(1), a)
	assert.Equal(t, uint32(2), b)
	assert.Equal(t, uint32(3), c)

	s.Clear()
	d := s.AddEntity(IdentityTransform())
	assert.Equal(t, uint32(4), d)
}

func TestStore_MeshIdentities(t *testing.T) {
	s := New(nil)
	_, ok := s.Mesh(0)
	assert.False(t, ok)

	var last uint32
	for i := 0; i < 5; i++ {
		id := s.AddMesh(Mesh{Name: fmt.Sprintf("m%d", i)})
		if i == 0 {
			assert.Equal(t, uint32(1), id)
		}
		assert.Greater(t, id, last)
		last = id
	}
	_, ok = s.Mesh(0)
	assert.False(t, ok)

	m, ok := s.Mesh(3)
	require.True(t, ok)
	assert.Equal(t, "m2", m.Name)
}

func TestStore_MaterialsAndLights(t *testing.T) {
	s := New(nil)
	matID := s.AddMaterial(Material{BaseColor: [4]float64{1, 0, 0, 1}, Roughness: 0.4})
	assert.Equal(t, uint32(1), matID)
	_, ok := s.Material(0)
	assert.False(t, ok)

	id := s.AddMeshEntity(IdentityTransform(), 0)
	assert.True(t, s.SetMaterial(id, matID))
	assert.False(t, s.SetMaterial(id, 99))
	e, _ := s.Entity(id)
	assert.Equal(t, matID, e.MaterialID)

	l1 := s.AddLight(Light{Intensity: 2, Type: PointLight})
	l2 := s.AddLight(Light{Intensity: 1, Type: DirectionalLight})
	assert.Equal(t, uint32(1), l1)
	assert.Equal(t, uint32(2), l2)
	lights := s.Lights()
	require.Len(t, lights, 2)
	assert.Equal(t, DirectionalLight, lights[1].Type)
}

func TestStore_RemovePrunesRelationsAndChildren(t *testing.T) {
	s := New(nil)
	table := s.AddKeyedEntity("/world/table", IdentityTransform())
	cup := s.AddKeyedEntity("/world/cup", IdentityTransform())
	lamp := s.AddKeyedEntity("/world/lamp", IdentityTransform())

	require.True(t, s.AddChild(table, cup))
	require.True(t, s.AddChild(table, lamp))
	assert.False(t, s.AddChild(table, cup), "duplicate child")
	assert.False(t, s.AddChild(table, table), "self child")

	require.True(t, s.AddDefaultRelation(cup, table, SupportedBy))
	require.True(t, s.AddRelation(lamp, table, Near, 0.25))
	assert.False(t, s.AddRelation(cup, 99, Near, 1))
	assert.False(t, s.AddDefaultRelation(99, table, Near))

	rels := s.RelationsOf(table)
	require.Len(t, rels, 2)
	assert.InDelta(t, DefaultRelationWeight, rels[0].Weight, 1e-9)
	assert.InDelta(t, 0.25, rels[1].Weight, 1e-9)

	require.True(t, s.RemoveEntity(cup))

	assert.Len(t, s.Relations(), 1)
	assert.Empty(t, s.RelationsOf(cup))
	parent, _ := s.Entity(table)
	assert.Equal(t, []uint32{lamp}, parent.Children)
}

func TestStore_RelationKeepsZeroWeight(t *testing.T) {
	s := New(nil)
	a := s.AddEntity(IdentityTransform())
	b := s.AddEntity(IdentityTransform())

	require.True(t, s.AddRelation(a, b, Near, 0))

	rels := s.Relations()
	require.Len(t, rels, 1)
	assert.Zero(t, rels[0].Weight)
}

func TestStore_SettersOnMissingEntity(t *testing.T) {
	s := New(nil)
	assert.False(t, s.SetTransform(7, IdentityTransform()))
	assert.False(t, s.SetSemantics(7, Semantics{}))
	assert.False(t, s.RemoveEntity(7))
	_, ok := s.Entity(7)
	assert.False(t, ok)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New(nil)
	id := s.AddEntity(IdentityTransform())
	require.True(t, s.SetSemantics(id, Semantics{Label: "screen", Tags: []string{"video"}, Stereo: StereoSBS}))

	e, _ := s.Entity(id)
	e.Semantics.Tags[0] = "mutated"
	e.Transform.Position.X = 100

	again, _ := s.Entity(id)
	assert.Equal(t, []string{"video"}, again.Semantics.Tags)
	assert.Zero(t, again.Transform.Position.X)
	assert.Equal(t, StereoSBS, again.Semantics.Stereo)
}

func TestStore_EntitiesSortedAndVideo(t *testing.T) {
	s := New(nil)
	meshID := s.AddMesh(Mesh{Name: "quad"})
	s.AddEntity(IdentityTransform())
	video := s.AddKeyedVideoEntity("/world/screen", IdentityTransform(), meshID, 42)

	all := s.Entities()
	require.Len(t, all, 2)
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Equal(t, uint32(42), all[1].TextureID)
	assert.Equal(t, "/world/screen", all[1].Key)
	assert.Equal(t, video, all[1].ID)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("/world/%d", i%4)
			id := s.AddKeyedEntity(key, IdentityTransform())
			s.SetTransform(id, Transform{Position: Vec3{X: float64(i)}})
			_ = s.Entities()
			_ = s.Stats()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, s.Stats().Entities)
}
