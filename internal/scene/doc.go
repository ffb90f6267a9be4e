// Package scene holds the placed objects of a live scene together with the
// meshes, materials and lights they reference and a semantic relation graph
// between them.
//
// # Identity
//
// Entities, meshes, materials and lights each have their own uint32 id space.
// Ids start at 1, grow monotonically and are never reused within a Store, so
// 0 always means "none". An entity may also carry an external key, typically
// the path of the stage prim it was imported from. Keys are unique: adding a
// keyed entity whose key is already present returns the existing id and
// changes nothing.
//
// # Concurrency
//
// A single mutex guards the whole store and is held for the duration of every
// operation, readers included. No operation performs I/O while holding it.
// Accessors return copies, so callers never observe later mutations through a
// value they already hold.
//
// # Relations
//
// Removing an entity prunes every relation that references it and removes it
// from the children list of any other entity.
package scene
