// Package output encodes a resolved build configuration for the external
// build executor.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/buildplan/internal/plan"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: must be 'json' or 'yaml'", s)
	}
}

// Document is the executor-facing shape of a resolved configuration.
type Document struct {
	Base    string            `json:"base" yaml:"base"`
	Define  map[string]string `json:"define" yaml:"define"`
	Plugins []Plugin          `json:"plugins" yaml:"plugins"`
}

// Plugin is one entry of Document.Plugins.
type Plugin struct {
	Name    string         `json:"name" yaml:"name"`
	Options map[string]any `json:"options" yaml:"options"`
}

// NewDocument converts cfg into its executor-facing shape.
func NewDocument(cfg *plan.ResolvedConfig) (*Document, error) {
	plugins := cfg.Plugins()
	doc := &Document{
		Base:    cfg.Base(),
		Define:  cfg.Define(),
		Plugins: make([]Plugin, 0, len(plugins)),
	}
	for _, p := range plugins {
		raw, err := ctyjson.Marshal(p.Options, p.Options.Type())
		if err != nil {
			return nil, fmt.Errorf("plugin %q: encode options: %w", p.Name, err)
		}
		// Numbers stay json.Number so option values keep their full precision.
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		opts := map[string]any{}
		if err := dec.Decode(&opts); err != nil {
			return nil, fmt.Errorf("plugin %q: decode options: %w", p.Name, err)
		}
		doc.Plugins = append(doc.Plugins, Plugin{Name: p.Name, Options: opts})
	}
	return doc, nil
}

// Encode writes cfg to w in the given format.
func Encode(w io.Writer, cfg *plan.ResolvedConfig, format Format) error {
	doc, err := NewDocument(cfg)
	if err != nil {
		return err
	}

	switch format {
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
