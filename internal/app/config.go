package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/output"
	"k8s.io/utils/clock"
)

// Revision source names accepted by Config.Revision.
const (
	RevisionStatic = "static"
	RevisionEnv    = "env"
	RevisionGit    = "git"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ProjectPath is a project file or directory. Empty means the current directory.
	ProjectPath string
	// Mode overrides NODE_ENV when set.
	Mode     string
	Format   output.Format
	OutPath  string
	Revision string

	Build       bool
	EntryPoints []string
	OutDir      string

	Watch bool

	LogFormat string
	LogLevel  string

	// Environ is the process environment snapshot.
	Environ env.Vars
	// Clock defaults to the wall clock.
	Clock clock.PassiveClock
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Format == "" {
		cfg.Format = output.JSON
	}
	if cfg.Revision == "" {
		cfg.Revision = RevisionStatic
	}
	if !slices.Contains([]string{RevisionStatic, RevisionEnv, RevisionGit}, cfg.Revision) {
		return nil, fmt.Errorf("invalid revision source %q: must be 'static', 'env' or 'git'", cfg.Revision)
	}
	if cfg.Mode != "" && env.Mode(cfg.Mode) != env.Development && env.Mode(cfg.Mode) != env.Production {
		return nil, fmt.Errorf("invalid mode %q: must be 'development' or 'production'", cfg.Mode)
	}
	if cfg.Build && len(cfg.EntryPoints) == 0 {
		return nil, errors.New("build requires at least one entry point")
	}
	if cfg.Build && cfg.OutDir == "" {
		cfg.OutDir = "dist"
	}
	if cfg.Environ == nil {
		cfg.Environ = env.Vars{}
	}
	return &cfg, nil
}
