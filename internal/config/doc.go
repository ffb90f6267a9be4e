// Package config defines the format-agnostic pipeline model and the Loader
// interface that format-specific adapters implement.
//
// The `config.Model` is the single input the application needs to build an
// execution graph: which nodes to create, how their ports are connected and,
// optionally, which stage document to import. Concrete loaders, such as the
// HCL one, live in separate packages.
package config
