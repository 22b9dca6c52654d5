package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/esbuild"
	"github.com/specialistvlad/buildplan/internal/fsutil"
	"github.com/specialistvlad/buildplan/internal/output"
	"github.com/specialistvlad/buildplan/internal/plan"
)

// Run resolves the build configuration, emits it and, when configured, runs
// the esbuild executor. In watch mode it keeps re-resolving on project file
// changes until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	if err := a.runOnce(ctx); err != nil {
		if !a.config.Watch {
			return err
		}
		a.logger.Error("Initial resolution failed, waiting for changes.", "error", err)
	}

	if a.config.Watch {
		return a.watch(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runOnce(ctx context.Context) error {
	cfg, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := a.emit(ctx, cfg); err != nil {
		return fmt.Errorf("failed to emit build configuration: %w", err)
	}
	if a.config.Build {
		_, err := esbuild.Build(ctx, cfg, esbuild.Target{
			EntryPoints: a.config.EntryPoints,
			OutDir:      a.config.OutDir,
			Write:       true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Resolve loads the project file, reads the environment and dotenv files,
// and resolves the build configuration.
func (a *App) Resolve(ctx context.Context) (*plan.ResolvedConfig, error) {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	dir := fsutil.ProjectDir(a.config.ProjectPath)

	projectPath := a.config.ProjectPath
	if projectPath == "" {
		projectPath = "."
	}
	project, err := a.loader.Load(ctx, projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	extensions, err := a.registry.Select(ctx, project.Extensions)
	if err != nil {
		return nil, err
	}

	vars := a.config.Environ
	if a.config.Mode != "" {
		vars = vars.With(env.ModeVar, a.config.Mode)
	}
	mode := env.Read(vars).Mode

	fileVars, err := env.LoadFiles(dir, mode)
	if err != nil {
		return nil, err
	}
	environment := env.Read(env.Merge(fileVars, vars))
	// The mode selects the dotenv files, so it cannot be changed by them.
	environment.Mode = mode
	logger.Debug("Environment read.", "mode", mode, "dir", dir, "dotenv_vars", len(fileVars))

	cfg, err := plan.Resolve(ctx, plan.Input{
		Env:        environment,
		Settings:   settingsFromProject(project),
		Extensions: extensions,
		Clock:      a.config.Clock,
		Revision:   a.revisionSource(dir, environment),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build configuration: %w", err)
	}
	logger.Info("Build configuration resolved.", "mode", cfg.Mode(), "base", cfg.Base(), "revision", cfg.Constants().Revision, "plugins", len(cfg.Plugins()))
	return cfg, nil
}

// emit writes cfg to the configured output file, or to outW when none is set.
// Files are replaced atomically so an executor never reads a partial plan.
func (a *App) emit(ctx context.Context, cfg *plan.ResolvedConfig) error {
	if a.config.OutPath == "" {
		return output.Encode(a.outW, cfg, a.config.Format)
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, cfg, a.config.Format); err != nil {
		return err
	}
	if err := renameio.WriteFile(a.config.OutPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", a.config.OutPath, err)
	}
	ctxlog.FromContext(ctx).Info("Build configuration written.", "path", a.config.OutPath, "format", a.config.Format)
	return nil
}
