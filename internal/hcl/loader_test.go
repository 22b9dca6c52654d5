package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_FullProjectFile(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	path := writeProjectFile(t, dir, "buildplan.hcl", `
		theme {
			resolver = "TDesignResolver"
			library  = "vue-next"
		}

		legacy {
			targets = ["defaults", "not IE 11", "chrome >= 64"]
		}

		extension "visualizer" {
			modes   = ["production"]
			options = {
				filename = "stats.html"
				open     = false
			}
		}

		extension "pwa" {}

		extension "inspector" {
			modes = []
		}
	`)

	// --- Act ---
	project, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, project.Theme)
	assert.Equal(t, "TDesignResolver", project.Theme.Resolver)
	assert.Equal(t, "vue-next", project.Theme.Library)

	require.NotNil(t, project.Legacy)
	assert.Equal(t, []string{"defaults", "not IE 11", "chrome >= 64"}, project.Legacy.Targets)

	require.Len(t, project.Extensions, 3)
	vis := project.Extensions[0]
	assert.Equal(t, "visualizer", vis.Name)
	assert.Equal(t, []string{"production"}, vis.Modes)
	assert.Equal(t, "stats.html", vis.Options.GetAttr("filename").AsString())
	assert.False(t, vis.Options.GetAttr("open").True())
	assert.Contains(t, vis.Source, "buildplan.hcl:")

	pwa := project.Extensions[1]
	assert.Equal(t, "pwa", pwa.Name)
	assert.Nil(t, pwa.Modes, "unset modes fall back to the registered default")
	assert.True(t, pwa.Options.IsNull())

	disabled := project.Extensions[2]
	assert.NotNil(t, disabled.Modes, "an explicit empty list must stay distinguishable from an unset one")
	assert.Empty(t, disabled.Modes)

	assert.Equal(t, []string{path}, project.Files)
}

func TestLoader_DirectoryMergesFilesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "b.hcl", `extension "pwa" {}`)
	writeProjectFile(t, dir, "a.hcl", `
		theme { library = "vue" }
		extension "visualizer" {}
	`)
	writeProjectFile(t, dir, "README.md", "not a project file")

	project, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	require.NotNil(t, project.Theme)
	assert.Equal(t, "", project.Theme.Resolver)
	assert.Equal(t, "vue", project.Theme.Library)
	assert.Nil(t, project.Legacy)

	require.Len(t, project.Extensions, 2)
	assert.Equal(t, "visualizer", project.Extensions[0].Name)
	assert.Equal(t, "pwa", project.Extensions[1].Name)
	assert.Equal(t, []string{filepath.Join(dir, "a.hcl"), filepath.Join(dir, "b.hcl")}, project.Files)
}

func TestLoader_MissingPathYieldsEmptyProject(t *testing.T) {
	project, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "buildplan.hcl"), "")
	require.NoError(t, err)
	assert.Nil(t, project.Theme)
	assert.Nil(t, project.Legacy)
	assert.Empty(t, project.Extensions)
	assert.Empty(t, project.Files)
}

func TestLoader_SamePathTwiceIsReadOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, "buildplan.hcl", `theme { library = "vue-next" }`)

	project, err := NewLoader().Load(context.Background(), path, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, project.Files)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"buildplan.hcl": `theme {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"buildplan.hcl": `server { port = 80 }`},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "missing required attribute",
			files:   map[string]string{"buildplan.hcl": `legacy {}`},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "wrong attribute type",
			files:   map[string]string{"buildplan.hcl": `legacy { targets = "defaults" }`},
			wantErr: "failed to decode HCL file",
		},
		{
			name: "duplicate theme in one file",
			files: map[string]string{"buildplan.hcl": `
				theme { library = "vue-next" }
				theme { library = "vue" }
			`},
			wantErr: `duplicate "theme" block`,
		},
		{
			name: "duplicate legacy across files",
			files: map[string]string{
				"a.hcl": `legacy { targets = ["defaults"] }`,
				"b.hcl": `legacy { targets = ["defaults"] }`,
			},
			wantErr: `duplicate "legacy" block`,
		},
		{
			name:    "modes not a list",
			files:   map[string]string{"buildplan.hcl": `extension "pwa" { modes = "production" }`},
			wantErr: `extension "pwa": invalid modes`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeProjectFile(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoader_RejectsNonHCLFile(t *testing.T) {
	path := writeProjectFile(t, t.TempDir(), "vite.config.js", "export default {}")

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a .hcl file")
}
