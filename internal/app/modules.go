package app

import (
	"fmt"
	"io"

	"github.com/specialistvlad/buildplan/internal/registry"
	"github.com/specialistvlad/buildplan/modules/pwa"
	"github.com/specialistvlad/buildplan/modules/visualizer"
)

// coreModules is the definitive list of all extension modules that are
// compiled into the buildplan binary.
var coreModules = []registry.Module{
	&visualizer.Module{},
	&pwa.Module{},
}

// DescribeExtensions writes one line per compiled-in extension to w, in name
// order.
func DescribeExtensions(w io.Writer) {
	reg := registry.New()
	for _, mod := range coreModules {
		mod.Register(reg)
	}
	for _, name := range reg.Names() {
		ext, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-12s %s (%s)\n", name, ext.Description, ext.Plugin)
	}
}
