package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/buildplan/internal/config"
	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Registry
}

// NewApp is the constructor for the main application. The resolved plan is
// written to outW and logs to logW. It panics when the compiled-in modules
// conflict, which is a programming error.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Extension modules registered.", "count", reg.Len(), "names", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: reg,
	}
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
