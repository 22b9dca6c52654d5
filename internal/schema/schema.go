package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Theme represents a `theme` block.
type Theme struct {
	Resolver string    `hcl:"resolver,optional"`
	Library  string    `hcl:"library"`
	DefRange hcl.Range `hcl:",def_range"`
}

// Legacy represents a `legacy` block.
type Legacy struct {
	Targets  []string  `hcl:"targets"`
	DefRange hcl.Range `hcl:",def_range"`
}

// Extension represents an `extension` block selecting a registered plugin.
type Extension struct {
	Name     string    `hcl:"name,label"`
	Modes    cty.Value `hcl:"modes,optional"`
	Options  cty.Value `hcl:"options,optional"`
	DefRange hcl.Range `hcl:",def_range"`
}

// ProjectFile represents the top-level structure of a project file.
type ProjectFile struct {
	Themes     []*Theme     `hcl:"theme,block"`
	Legacies   []*Legacy    `hcl:"legacy,block"`
	Extensions []*Extension `hcl:"extension,block"`
}
