// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the nodestore.Store interface.
//
// # Concurrency Model
//
// Unlike inmemorytopology which uses RWMutex, this store uses sync.Map. The
// key space (the pipeline's nodes) is stable while values are rewritten on
// every tick, which is the access pattern sync.Map is built for.
package inmemorystore
