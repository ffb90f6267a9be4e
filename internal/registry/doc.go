// Package registry maps node type names to constructors.
//
// The Registry is the single extension point for node variants: the graph
// never names a concrete type, it asks the registry to create one by the
// string used in pipeline files (e.g., "CameraNode"). Variants are grouped
// into modules, and the application registers every core module in an
// explicit, ordered list at startup rather than through init side effects.
//
// After a pipeline is loaded, ValidateModel checks that every node type it
// names is registered, so typos fail before any node is constructed.
package registry
