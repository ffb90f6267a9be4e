// Package node defines the contract every processing unit in a pipeline
// implements, together with the shared plumbing variants embed.
//
// # Lifecycle
//
// A node is constructed through the registry, initialized exactly once with
// a Config, processed zero or more times (once per tick) and cleaned up
// before it is dropped. Initialize declares the node's ports, so calling it
// twice would declare them twice; the graph guarantees it is called once.
//
// # Deferred configuration
//
// Variant mutators such as SetModelPath never do the expensive work
// themselves. They store the new value and Touch the node's Dirty tracker.
// The next Process call sees the dirty state, performs the load, and only
// then Consumes the flag. Rapid repeated changes therefore collapse into a
// single apply on the next tick.
//
// # Execution context
//
// Process receives a Context scoped to the current tick. It gives access to
// the node's input values and output ports and, optionally, to the scene
// store, the renderer and the stage importer. Any of those collaborators may
// be nil; variants that need one fail with the matching Err*Unavailable error
// instead of assuming presence.
package node
