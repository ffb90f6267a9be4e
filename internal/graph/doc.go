// Package graph owns a pipeline's nodes and connections and drives them one
// tick at a time.
//
// # Architecture: The Facade Pattern
//
// The Graph is a facade over two specialized stores plus the node registry:
//
//	┌─────────────────────────────────────┐
//	│               Graph                 │
//	│  (build, validate, order, tick)     │
//	└──────────┬────────────┬─────────────┘
//	           │            │
//	           ▼            ▼
//	  ┌────────────┐  ┌────────────┐
//	  │  Topology  │  │ Node State │
//	  │   Store    │  │   Store    │
//	  │ (Structure)│  │  (Status)  │
//	  └────────────┘  └────────────┘
//
// **Topology Store** (topologystore.Store) holds nodes and port connections.
// **Node Store** (nodestore.Store) holds per-tick status, errors and the
// output snapshot of each node's last successful run.
//
// # Construction
//
// AddNode creates a node through the registry, initializes it exactly once
// and assigns it a Node-species entity ID. Connect checks that both ports
// exist, that their data types match exactly, that the input is not already
// fed, and that the new edge does not close a cycle. A rejected Connect
// leaves the graph unchanged.
//
// # Ticks
//
// Tick processes every node once, in a deterministic topological order (Kahn's
// algorithm, ties broken by insertion order). Before a node runs, its inputs
// are cleared and refilled from the current outputs of the nodes feeding it,
// so a value produced upstream is visible downstream in the same tick.
//
// A failing node is marked Failed and keeps its previous outputs. Every node
// that transitively depends on it is marked Skipped for that tick, while
// unrelated branches keep running.
//
// # Thread-Safety
//
// Structural changes and ticks are serialized by a mutex. Read accessors go
// straight to the thread-safe stores and never wait for a running tick.
package graph
