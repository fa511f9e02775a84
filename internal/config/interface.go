package config

import "context"

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads every manifest found at paths (files or directories) and
	// merges their declarations, in path order, into one model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
