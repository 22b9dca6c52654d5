// Package pwa registers the progressive web app extension, which generates
// the service worker and registers it automatically.
package pwa

import (
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the extension name used in project files.
const Name = "pwa"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the extension with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterExtension(Name, &registry.RegisteredExtension{
		Plugin:       "vite-plugin-pwa",
		Description:  "Service worker generation with automatic registration.",
		DefaultModes: []env.Mode{env.Development, env.Production},
		DefaultOptions: cty.ObjectVal(map[string]cty.Value{
			"injectRegister": cty.StringVal("auto"),
		}),
	})
}
