package esbuild

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/plan"
)

// Target describes what to build.
type Target struct {
	EntryPoints []string
	OutDir      string
	// Write controls whether esbuild writes the output files to disk.
	Write bool
}

// browserslist queries esbuild can express, mapped to the minimum engine
// versions they cover.
var queryEngines = map[string][]api.Engine{
	"defaults": {
		{Name: api.EngineChrome, Version: "87"},
		{Name: api.EngineEdge, Version: "88"},
		{Name: api.EngineFirefox, Version: "78"},
		{Name: api.EngineSafari, Version: "14"},
	},
	"es6": {
		{Name: api.EngineChrome, Version: "51"},
		{Name: api.EngineEdge, Version: "15"},
		{Name: api.EngineFirefox, Version: "54"},
		{Name: api.EngineSafari, Version: "10"},
	},
}

// esbuild never emits code for Internet Explorer, so excluding it is a no-op.
var implicitQueries = map[string]struct{}{
	"not ie 11":    {},
	"not ie <= 11": {},
	"not dead":     {},
}

// Options maps cfg onto esbuild build options.
func Options(ctx context.Context, cfg *plan.ResolvedConfig, target Target) api.BuildOptions {
	logger := ctxlog.FromContext(ctx)
	prod := cfg.Mode() == env.Production

	opts := api.BuildOptions{
		EntryPoints:       target.EntryPoints,
		Outdir:            target.OutDir,
		Bundle:            true,
		Write:             target.Write,
		Format:            api.FormatESModule,
		Platform:          api.PlatformBrowser,
		Target:            api.ESNext,
		Define:            cfg.Define(),
		PublicPath:        cfg.Base(),
		MinifySyntax:      prod,
		MinifyWhitespace:  prod,
		MinifyIdentifiers: prod,
		Sourcemap:         api.SourceMapNone,
		LogLevel:          api.LogLevelSilent,
	}
	if !prod {
		opts.Sourcemap = api.SourceMapLinked
	}

	for _, p := range cfg.Plugins() {
		switch p.Name {
		case plan.PluginLegacy:
			targets, _ := plan.StringsOption(p.Options, "targets")
			opts.Target = api.ES2015
			opts.Engines = enginesFor(ctx, targets)
		default:
			logger.Debug("Plugin has no esbuild equivalent, skipping.", "plugin", p.Name)
		}
	}
	return opts
}

// enginesFor resolves browserslist queries to esbuild engines, keeping the
// lowest version per engine.
func enginesFor(ctx context.Context, queries []string) []api.Engine {
	logger := ctxlog.FromContext(ctx)
	lowest := make(map[api.EngineName]string)
	var order []api.EngineName

	for _, q := range queries {
		key := strings.ToLower(strings.Join(strings.Fields(q), " "))
		if _, ok := implicitQueries[key]; ok {
			continue
		}
		engines, ok := queryEngines[key]
		if !ok {
			logger.Warn("Legacy target has no esbuild mapping, ignoring.", "query", q)
			continue
		}
		for _, e := range engines {
			cur, seen := lowest[e.Name]
			if !seen {
				order = append(order, e.Name)
				lowest[e.Name] = e.Version
				continue
			}
			if versionLess(e.Version, cur) {
				lowest[e.Name] = e.Version
			}
		}
	}

	out := make([]api.Engine, 0, len(order))
	for _, name := range order {
		out = append(out, api.Engine{Name: name, Version: lowest[name]})
	}
	return out
}

// versionLess compares the major versions used in queryEngines.
func versionLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
