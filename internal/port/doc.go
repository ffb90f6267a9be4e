// Package port describes the typed values that nodes exchange.
//
// A DataType is a (category, subtype) pair. Two data types are compatible
// only when both fields are equal; there is no implicit coercion. A Port is a
// named, labelled connection point carrying one DataType, and a Set is the
// ordered list of ports a node declares on one side.
//
// The payload types in value.go are what the built-in node variants actually
// put on their ports.
package port
