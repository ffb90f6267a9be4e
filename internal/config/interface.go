package config

import "context"

// Loader is the interface for a format-specific pipeline loader.
type Loader interface {
	// Load reads every pipeline file reachable from paths and merges them into
	// a single format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
