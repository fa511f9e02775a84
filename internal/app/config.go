package app

import (
	"fmt"

	"github.com/specialistvlad/opreg/internal/registry"
)

// Config holds all the necessary configuration for an App instance.
type Config struct {
	// ManifestPaths are extra manifest files or directories, ingested after
	// the core modules in the given order.
	ManifestPaths []string

	LogFormat string // "text" or "json"
	LogLevel  string

	// DuplicatePolicy is "overwrite", "first" or "error".
	DuplicatePolicy string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if _, err := registry.ParseDuplicatePolicy(cfg.DuplicatePolicy); err != nil {
		return nil, err
	}
	return &cfg, nil
}
