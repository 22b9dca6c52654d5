package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnknownExtension is returned when a project selects an extension that
// no module registered.
var ErrUnknownExtension = errors.New("unknown extension")

// Module is the interface that all extension modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredExtension describes an extension plugin compiled into the binary.
type RegisteredExtension struct {
	// Plugin is the descriptor name handed to the executor.
	Plugin      string
	Description string
	// DefaultModes apply when the project does not restrict modes.
	DefaultModes []env.Mode
	// DefaultOptions is an object value. A null value means no options.
	DefaultOptions cty.Value
}

// Registry holds the registered extensions of a single application instance.
type Registry struct {
	extensions map[string]*RegisteredExtension
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		extensions: make(map[string]*RegisteredExtension),
	}
}

// RegisterExtension registers an extension under name. Registering the same
// name twice, or a malformed definition, is a programming error and panics.
func (r *Registry) RegisterExtension(name string, ext *RegisteredExtension) {
	if _, exists := r.extensions[name]; exists {
		panic(fmt.Sprintf("extension with name '%s' already registered", name))
	}
	if ext == nil || ext.Plugin == "" {
		panic(fmt.Sprintf("extension '%s' must name its plugin", name))
	}
	if opts := ext.DefaultOptions; !opts.IsNull() && !opts.Type().IsObjectType() {
		panic(fmt.Sprintf("extension '%s' default options must be an object", name))
	}
	slog.Debug("Registering extension.", "name", name, "plugin", ext.Plugin)
	r.extensions[name] = ext
}

// Lookup returns the extension registered under name.
func (r *Registry) Lookup(name string) (*RegisteredExtension, bool) {
	ext, ok := r.extensions[name]
	return ext, ok
}

// Names returns the registered extension names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extensions))
	for name := range r.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered extensions.
func (r *Registry) Len() int {
	return len(r.extensions)
}
