package hcl

import (
	"fmt"

	"github.com/specialistvlad/buildplan/internal/config"
	"github.com/specialistvlad/buildplan/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateTheme converts a decoded theme block into the agnostic model.
func translateTheme(s *schema.Theme) *config.Theme {
	return &config.Theme{
		Resolver: s.Resolver,
		Library:  s.Library,
	}
}

// translateLegacy converts a decoded legacy block into the agnostic model.
func translateLegacy(s *schema.Legacy) *config.Legacy {
	targets := make([]string, len(s.Targets))
	copy(targets, s.Targets)
	return &config.Legacy{Targets: targets}
}

// translateExtension converts a decoded extension block into the agnostic model.
// An explicit `modes = []` is kept as an empty, non-nil list.
func translateExtension(s *schema.Extension) (*config.Extension, error) {
	source := fmt.Sprintf("%s:%d", s.DefRange.Filename, s.DefRange.Start.Line)
	modes, err := stringList(s.Modes)
	if err != nil {
		return nil, fmt.Errorf("%s: extension %q: invalid modes: %w", source, s.Name, err)
	}
	opts := s.Options
	if opts.IsNull() {
		opts = cty.NilVal
	}
	return &config.Extension{
		Name:    s.Name,
		Modes:   modes,
		Options: opts,
		Source:  source,
	}, nil
}

// stringList returns nil for a null value and a non-nil slice otherwise.
func stringList(v cty.Value) ([]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	list, err := convert.Convert(v, cty.List(cty.String))
	if err != nil {
		return nil, err
	}
	if !list.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}
	out := make([]string, 0, list.LengthInt())
	for it := list.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if el.IsNull() {
			return nil, fmt.Errorf("element must not be null")
		}
		out = append(out, el.AsString())
	}
	return out, nil
}
