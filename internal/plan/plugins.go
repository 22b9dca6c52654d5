package plan

import (
	"context"

	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/zclconf/go-cty/cty"
)

// Names of the baseline plugins, in pipeline order.
const (
	PluginVue        = "vue"
	PluginAutoImport = "unplugin-auto-import"
	PluginComponents = "unplugin-vue-components"
	PluginLegacy     = "legacy"
)

// PluginDescriptor is a named plugin and its static options.
type PluginDescriptor struct {
	Name string
	// Options is an object value. Use cty.EmptyObjectVal for no options.
	Options cty.Value
}

// ThemeResolver selects which component library variant the auto-import
// and component resolvers target.
type ThemeResolver struct {
	Name    string
	Library string
}

// Value renders the resolver as a plugin option value.
func (t ThemeResolver) Value() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"name":    cty.StringVal(t.Name),
		"library": cty.StringVal(t.Library),
	})
}

// Settings are the static inputs of the plugin list.
type Settings struct {
	// Theme is shared by the auto-import and component plugins.
	Theme         ThemeResolver
	LegacyTargets []string
}

// DefaultSettings returns the TDesign vue-next theme and the modern
// browser defaults without IE 11.
func DefaultSettings() Settings {
	return Settings{
		Theme: ThemeResolver{
			Name:    "TDesignResolver",
			Library: "vue-next",
		},
		LegacyTargets: []string{"defaults", "not IE 11"},
	}
}

// Extension is an optional plugin appended after the baseline list.
type Extension interface {
	// Applies reports whether the extension is active in mode.
	Applies(mode env.Mode) bool
	Descriptor() PluginDescriptor
}

// BuildPlugins assembles the plugin list for mode. The four baseline plugins
// always come first, in fixed order; applicable extensions follow in the
// order given.
func BuildPlugins(ctx context.Context, mode env.Mode, settings Settings, extensions []Extension) []PluginDescriptor {
	logger := ctxlog.FromContext(ctx)

	resolvers := cty.ListVal([]cty.Value{settings.Theme.Value()})

	plugins := []PluginDescriptor{
		{Name: PluginVue, Options: cty.EmptyObjectVal},
		{Name: PluginAutoImport, Options: cty.ObjectVal(map[string]cty.Value{"resolvers": resolvers})},
		{Name: PluginComponents, Options: cty.ObjectVal(map[string]cty.Value{"resolvers": resolvers})},
		{Name: PluginLegacy, Options: cty.ObjectVal(map[string]cty.Value{"targets": stringList(settings.LegacyTargets)})},
	}

	for _, ext := range extensions {
		if ext == nil || !ext.Applies(mode) {
			continue
		}
		d := ext.Descriptor()
		logger.Debug("Extension plugin enabled.", "plugin", d.Name, "mode", mode)
		plugins = append(plugins, d)
	}

	logger.Debug("Plugin list built.", "mode", mode, "count", len(plugins))
	return plugins
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

// StringsOption returns the list of strings stored under key in options.
// ok is false when the attribute is absent or not a list of known strings.
func StringsOption(options cty.Value, key string) (items []string, ok bool) {
	if options.IsNull() || !options.IsKnown() || !options.Type().IsObjectType() || !options.Type().HasAttribute(key) {
		return nil, false
	}
	v := options.GetAttr(key)
	if v.IsNull() || !v.IsKnown() || !v.CanIterateElements() {
		return nil, false
	}
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if el.IsNull() || !el.IsKnown() || !el.Type().Equals(cty.String) {
			return nil, false
		}
		items = append(items, el.AsString())
	}
	return items, true
}
