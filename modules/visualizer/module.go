// Package visualizer registers the bundle visualizer extension. It writes an
// interactive treemap of the production bundle next to the build output.
package visualizer

import (
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the extension name used in project files.
const Name = "visualizer"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the extension with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(Name, &registry.RegisteredExtension{
		Plugin:       "rollup-plugin-visualizer",
		Description:  "Bundle size treemap of the production build.",
		DefaultModes: []env.Mode{env.Production},
		DefaultOptions: cty.ObjectVal(map[string]cty.Value{
			"filename": cty.StringVal("stats.html"),
			"template": cty.StringVal("treemap"),
			"gzipSize": cty.True,
		}),
	})
}
