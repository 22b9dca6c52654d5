package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/buildplan/internal/config"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func newTestRegistry() *Registry {
	r := New()
	r.RegisterExtension("visualizer", &RegisteredExtension{
		Plugin:       "rollup-plugin-visualizer",
		DefaultModes: []env.Mode{env.Production},
		DefaultOptions: cty.ObjectVal(map[string]cty.Value{
			"filename": cty.StringVal("stats.html"),
			"gzipSize": cty.True,
		}),
	})
	r.RegisterExtension("pwa", &RegisteredExtension{
		Plugin:       "vite-plugin-pwa",
		DefaultModes: []env.Mode{env.Development, env.Production},
	})
	return r
}

func TestRegisterExtension(t *testing.T) {
	r := newTestRegistry()
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"pwa", "visualizer"}, r.Names())

	ext, ok := r.Lookup("visualizer")
	require.True(t, ok)
	assert.Equal(t, "rollup-plugin-visualizer", ext.Plugin)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterExtension_Panics(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		r := newTestRegistry()
		assert.PanicsWithValue(t, "extension with name 'pwa' already registered", func() {
			r.RegisterExtension("pwa", &RegisteredExtension{Plugin: "other"})
		})
	})
	t.Run("missing plugin", func(t *testing.T) {
		assert.Panics(t, func() { New().RegisterExtension("x", &RegisteredExtension{}) })
	})
	t.Run("non-object defaults", func(t *testing.T) {
		assert.Panics(t, func() {
			New().RegisterExtension("x", &RegisteredExtension{Plugin: "x", DefaultOptions: cty.StringVal("no")})
		})
	})
}

func TestSelect_NothingDeclared(t *testing.T) {
	exts, err := newTestRegistry().Select(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, exts)
}

func TestSelect_DefaultsAndOverrides(t *testing.T) {
	r := newTestRegistry()
	decls := []*config.Extension{
		{
			Name:    "visualizer",
			Options: cty.ObjectVal(map[string]cty.Value{"filename": cty.StringVal("report.html")}),
			Source:  "buildplan.hcl:3",
		},
		{Name: "pwa", Modes: []string{"production"}, Source: "buildplan.hcl:9"},
	}

	exts, err := r.Select(context.Background(), decls)
	require.NoError(t, err)
	require.Len(t, exts, 2)

	vis := exts[0]
	assert.True(t, vis.Applies(env.Production))
	assert.False(t, vis.Applies(env.Development))
	d := vis.Descriptor()
	assert.Equal(t, "rollup-plugin-visualizer", d.Name)
	assert.Equal(t, "report.html", d.Options.GetAttr("filename").AsString())
	assert.True(t, d.Options.GetAttr("gzipSize").True())

	pwa := exts[1]
	assert.True(t, pwa.Applies(env.Production))
	assert.False(t, pwa.Applies(env.Development))
	assert.True(t, pwa.Descriptor().Options.RawEquals(cty.EmptyObjectVal))
}

func TestSelect_ExplicitEmptyModesDisable(t *testing.T) {
	// --- Arrange ---
	decls := []*config.Extension{
		{Name: "visualizer", Modes: []string{}, Source: "buildplan.hcl:1"},
		{Name: "pwa", Modes: nil, Source: "buildplan.hcl:2"},
	}

	// --- Act ---
	exts, err := newTestRegistry().Select(context.Background(), decls)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, exts, 2)
	assert.False(t, exts[0].Applies(env.Production))
	assert.False(t, exts[0].Applies(env.Development))
	assert.True(t, exts[1].Applies(env.Production), "nil modes keep the registered default")
	assert.True(t, exts[1].Applies(env.Development))
}

func TestSelect_Errors(t *testing.T) {
	tests := []struct {
		name        string
		decls       []*config.Extension
		wantErr     string
		wantUnknown bool
	}{
		{
			name:        "unknown extension",
			decls:       []*config.Extension{{Name: "inspector", Source: "a.hcl:1"}},
			wantErr:     `a.hcl:1: extension "inspector" is not registered (known: pwa, visualizer)`,
			wantUnknown: true,
		},
		{
			name:    "invalid mode",
			decls:   []*config.Extension{{Name: "pwa", Modes: []string{"staging"}, Source: "a.hcl:1"}},
			wantErr: `invalid mode "staging"`,
		},
		{
			name: "duplicate selection",
			decls: []*config.Extension{
				{Name: "pwa", Source: "a.hcl:1"},
				{Name: "pwa", Source: "a.hcl:5"},
			},
			wantErr: `a.hcl:5: extension "pwa" already selected at a.hcl:1`,
		},
		{
			name:    "non-object options",
			decls:   []*config.Extension{{Name: "pwa", Options: cty.StringVal("x"), Source: "a.hcl:1"}},
			wantErr: "options must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRegistry().Select(context.Background(), tt.decls)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.wantUnknown, errors.Is(err, ErrUnknownExtension))
		})
	}
}
