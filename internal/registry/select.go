package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/buildplan/internal/config"
	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/plan"
	"github.com/zclconf/go-cty/cty"
)

// selected is a registered extension bound to a project's choices.
type selected struct {
	plugin  string
	modes   []env.Mode
	options cty.Value
}

func (s *selected) Applies(mode env.Mode) bool {
	return slices.Contains(s.modes, mode)
}

func (s *selected) Descriptor() plan.PluginDescriptor {
	return plan.PluginDescriptor{Name: s.plugin, Options: s.options}
}

// Select validates the project's extension blocks against the registry and
// returns them as plan extensions in declaration order. All problems are
// reported together.
func (r *Registry) Select(ctx context.Context, decls []*config.Extension) ([]plan.Extension, error) {
	logger := ctxlog.FromContext(ctx)
	var errs []string
	var unknown bool
	out := make([]plan.Extension, 0, len(decls))
	seen := make(map[string]string)

	for _, decl := range decls {
		reg, ok := r.extensions[decl.Name]
		if !ok {
			unknown = true
			errs = append(errs, fmt.Sprintf("%s: extension %q is not registered (known: %s)", decl.Source, decl.Name, strings.Join(r.Names(), ", ")))
			continue
		}
		if prev, dup := seen[decl.Name]; dup {
			errs = append(errs, fmt.Sprintf("%s: extension %q already selected at %s", decl.Source, decl.Name, prev))
			continue
		}
		seen[decl.Name] = decl.Source

		modes, err := parseModes(decl.Modes, reg.DefaultModes)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: extension %q: %v", decl.Source, decl.Name, err))
			continue
		}
		opts, err := mergeOptions(reg.DefaultOptions, decl.Options)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: extension %q: %v", decl.Source, decl.Name, err))
			continue
		}

		logger.Debug("Extension selected.", "name", decl.Name, "plugin", reg.Plugin, "modes", modes)
		out = append(out, &selected{plugin: reg.Plugin, modes: modes, options: opts})
	}

	if len(errs) > 0 {
		err := fmt.Errorf("extension selection failed:\n- %s", strings.Join(errs, "\n- "))
		if unknown {
			return nil, fmt.Errorf("%w: %w", ErrUnknownExtension, err)
		}
		return nil, err
	}
	return out, nil
}

func parseModes(raw []string, defaults []env.Mode) ([]env.Mode, error) {
	if raw == nil {
		return slices.Clone(defaults), nil
	}
	modes := make([]env.Mode, 0, len(raw))
	for _, m := range raw {
		switch env.Mode(m) {
		case env.Development, env.Production:
			modes = append(modes, env.Mode(m))
		default:
			return nil, fmt.Errorf("invalid mode %q: must be %q or %q", m, env.Development, env.Production)
		}
	}
	return modes, nil
}

// mergeOptions overlays the project's options on the registered defaults,
// attribute by attribute.
func mergeOptions(defaults, overrides cty.Value) (cty.Value, error) {
	attrs := make(map[string]cty.Value)
	for _, v := range []cty.Value{defaults, overrides} {
		if v.IsNull() {
			continue
		}
		if !v.IsWhollyKnown() {
			return cty.NilVal, fmt.Errorf("options must be fully known")
		}
		if !v.Type().IsObjectType() && !v.Type().IsMapType() {
			return cty.NilVal, fmt.Errorf("options must be an object, got %s", v.Type().FriendlyName())
		}
		for it := v.ElementIterator(); it.Next(); {
			k, val := it.Element()
			attrs[k.AsString()] = val
		}
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(attrs), nil
}
