package config

import "context"

// Loader is the interface for a format-specific project loader.
type Loader interface {
	// Load reads every project file found under paths and merges them into a
	// single Project. Paths that do not exist are skipped.
	Load(ctx context.Context, paths ...string) (*Project, error)
}
