package config

import "github.com/zclconf/go-cty/cty"

// Project is the merged content of all project files.
type Project struct {
	// Theme is nil when no file declares one.
	Theme *Theme
	// Legacy is nil when no file declares one.
	Legacy     *Legacy
	Extensions []*Extension
	// Files lists the files the project was read from, in load order.
	Files []string
}

// Theme overrides the shared theme resolver.
type Theme struct {
	Resolver string
	Library  string
}

// Legacy overrides the legacy browser targets.
type Legacy struct {
	Targets []string
}

// Extension selects a registered extension plugin.
type Extension struct {
	Name string
	// Modes restricts the extension to the named modes. Nil means the
	// registered default; an empty list disables the extension.
	Modes []string
	// Options are merged over the registered defaults. cty.NilVal when unset.
	Options cty.Value
	// Source is "file:line" of the declaring block.
	Source string
}
