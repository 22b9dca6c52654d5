package esbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(t *testing.T, mode env.Mode, settings plan.Settings) *plan.ResolvedConfig {
	t.Helper()
	ctx := context.Background()
	plugins := plan.BuildPlugins(ctx, mode, settings, nil)
	cfg, err := plan.Emit(mode, plan.Constants{Revision: "local", BuildDate: 1700000000000}, plugins)
	require.NoError(t, err)
	return cfg
}

func TestOptions_Production(t *testing.T) {
	cfg := resolved(t, env.Production, plan.DefaultSettings())
	opts := Options(context.Background(), cfg, Target{EntryPoints: []string{"src/main.ts"}, OutDir: "dist"})

	assert.Equal(t, cfg.Define(), opts.Define)
	assert.Equal(t, "", opts.PublicPath)
	assert.True(t, opts.MinifySyntax)
	assert.True(t, opts.MinifyWhitespace)
	assert.True(t, opts.MinifyIdentifiers)
	assert.Equal(t, api.SourceMapNone, opts.Sourcemap)
	assert.Equal(t, api.ES2015, opts.Target)
	assert.Equal(t, []api.Engine{
		{Name: api.EngineChrome, Version: "87"},
		{Name: api.EngineEdge, Version: "88"},
		{Name: api.EngineFirefox, Version: "78"},
		{Name: api.EngineSafari, Version: "14"},
	}, opts.Engines)
	assert.Equal(t, []string{"src/main.ts"}, opts.EntryPoints)
	assert.Equal(t, "dist", opts.Outdir)
}

func TestOptions_Development(t *testing.T) {
	cfg := resolved(t, env.Development, plan.DefaultSettings())
	opts := Options(context.Background(), cfg, Target{})

	assert.Equal(t, "./", opts.PublicPath)
	assert.False(t, opts.MinifySyntax)
	assert.False(t, opts.MinifyWhitespace)
	assert.False(t, opts.MinifyIdentifiers)
	assert.Equal(t, api.SourceMapLinked, opts.Sourcemap)
}

func TestEnginesFor(t *testing.T) {
	ctx := context.Background()

	engines := enginesFor(ctx, []string{"defaults", "es6", "not  IE 11", "> 0.5%"})
	assert.Equal(t, []api.Engine{
		{Name: api.EngineChrome, Version: "51"},
		{Name: api.EngineEdge, Version: "15"},
		{Name: api.EngineFirefox, Version: "54"},
		{Name: api.EngineSafari, Version: "10"},
	}, engines)

	assert.Empty(t, enginesFor(ctx, nil))
	assert.Empty(t, enginesFor(ctx, []string{"not IE 11"}))
}

func TestVersionLess(t *testing.T) {
	assert.True(t, versionLess("9", "10"))
	assert.True(t, versionLess("15", "88"))
	assert.False(t, versionLess("88", "88"))
	assert.False(t, versionLess("100", "99"))
}

func TestBuild_SubstitutesDefines(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.js")
	src := "console.log(__COMMIT_HASH__, __BUILD_DATE__);\n"
	require.NoError(t, os.WriteFile(entry, []byte(src), 0600))

	cfg := resolved(t, env.Development, plan.DefaultSettings())
	files, err := Build(context.Background(), cfg, Target{
		EntryPoints: []string{entry},
		OutDir:      filepath.Join(dir, "dist"),
	})
	require.NoError(t, err)

	var js string
	for _, f := range files {
		if strings.HasSuffix(f.Path, ".js") {
			js = string(f.Contents)
		}
	}
	require.NotEmpty(t, js, "expected a JavaScript output file")
	assert.Contains(t, js, `"local"`)
	assert.Contains(t, js, "1700000000000")
	assert.NotContains(t, js, "__COMMIT_HASH__")

	_, err = os.Stat(filepath.Join(dir, "dist"))
	assert.True(t, os.IsNotExist(err), "nothing should be written when Write is false")
}

func TestBuild_SurfacesErrors(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.js")
	require.NoError(t, os.WriteFile(entry, []byte("import './missing.js';\n"), 0600))

	cfg := resolved(t, env.Production, plan.DefaultSettings())
	_, err := Build(context.Background(), cfg, Target{EntryPoints: []string{entry}, OutDir: filepath.Join(dir, "dist")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBuildFailed))
	assert.Contains(t, err.Error(), "missing.js")
}

func TestBuild_RequiresEntryPoints(t *testing.T) {
	cfg := resolved(t, env.Development, plan.DefaultSettings())
	_, err := Build(context.Background(), cfg, Target{})
	assert.True(t, errors.Is(err, ErrBuildFailed))
}
