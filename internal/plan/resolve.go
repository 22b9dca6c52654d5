package plan

import (
	"context"

	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/env"
	"k8s.io/utils/clock"
)

// Input gathers everything a single resolution depends on.
type Input struct {
	Env        env.Environment
	Settings   Settings
	Extensions []Extension
	// Clock defaults to the wall clock.
	Clock clock.PassiveClock
	// Revision defaults to FallbackRevision.
	Revision RevisionSource
}

// Resolve runs constant resolution, plugin list assembly and emission in a
// single pass.
func Resolve(ctx context.Context, in Input) (*ResolvedConfig, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving build configuration.", "mode", in.Env.Mode, "overrides", in.Env.OverrideKeys())

	constants := ResolveConstants(ctx, in.Clock, in.Revision)
	plugins := BuildPlugins(ctx, in.Env.Mode, in.Settings, in.Extensions)

	cfg, err := Emit(in.Env.Mode, constants, plugins)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build configuration resolved.", "base", cfg.Base(), "plugins", len(plugins))
	return cfg, nil
}
