package plan

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/buildplan/internal/env"
)

// ErrInvalidPlugin reports a malformed plugin descriptor.
var ErrInvalidPlugin = errors.New("invalid plugin descriptor")

// Base paths per mode.
const (
	ProductionBase  = ""
	DevelopmentBase = "./"
)

// ResolvedConfig is the configuration consumed by the build executor. It is
// immutable once emitted.
type ResolvedConfig struct {
	mode      env.Mode
	base      string
	constants Constants
	plugins   []PluginDescriptor
}

// Mode returns the build mode the configuration was resolved for.
func (c *ResolvedConfig) Mode() env.Mode {
	return c.mode
}

// Base returns the public base path.
func (c *ResolvedConfig) Base() string {
	return c.base
}

// Constants returns the build-time constants.
func (c *ResolvedConfig) Constants() Constants {
	return c.constants
}

// Define returns a fresh copy of the define map.
func (c *ResolvedConfig) Define() map[string]string {
	return c.constants.Define()
}

// Plugins returns a copy of the ordered plugin list.
func (c *ResolvedConfig) Plugins() []PluginDescriptor {
	out := make([]PluginDescriptor, len(c.plugins))
	copy(out, c.plugins)
	return out
}

// Plugin returns the first descriptor named name.
func (c *ResolvedConfig) Plugin(name string) (PluginDescriptor, bool) {
	for _, p := range c.plugins {
		if p.Name == name {
			return p, true
		}
	}
	return PluginDescriptor{}, false
}

// BasePath returns the base path for mode.
func BasePath(mode env.Mode) string {
	if mode == env.Production {
		return ProductionBase
	}
	return DevelopmentBase
}

// Emit aggregates the resolved parts into a ResolvedConfig. Malformed
// descriptors are rejected with ErrInvalidPlugin.
func Emit(mode env.Mode, constants Constants, plugins []PluginDescriptor) (*ResolvedConfig, error) {
	for i, p := range plugins {
		if err := validateDescriptor(p); err != nil {
			return nil, fmt.Errorf("plugin #%d: %w", i, err)
		}
	}
	if constants.Revision == "" {
		return nil, fmt.Errorf("constant %s: empty revision", CommitHashKey)
	}

	list := make([]PluginDescriptor, len(plugins))
	copy(list, plugins)

	return &ResolvedConfig{
		mode:      mode,
		base:      BasePath(mode),
		constants: constants,
		plugins:   list,
	}, nil
}

func validateDescriptor(p PluginDescriptor) error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidPlugin)
	}
	opts := p.Options
	if opts.IsNull() {
		return fmt.Errorf("%w: %q has no options value", ErrInvalidPlugin, p.Name)
	}
	if !opts.IsWhollyKnown() {
		return fmt.Errorf("%w: %q has unknown option values", ErrInvalidPlugin, p.Name)
	}
	if !opts.Type().IsObjectType() {
		return fmt.Errorf("%w: %q options must be an object, got %s", ErrInvalidPlugin, p.Name, opts.Type().FriendlyName())
	}
	return nil
}
