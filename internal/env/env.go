package env

import (
	"sort"
	"strings"
)

// ModeVar is the variable holding the build mode.
const ModeVar = "NODE_ENV"

// Variables whose name carries one of these prefixes are collected as overrides.
var overridePrefixes = []string{"VITE_", "BUILDPLAN_"}

// Mode is the build mode of a single invocation.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// ParseMode maps a raw value to a Mode. Only the exact literal "production"
// selects production; everything else, including the empty string, is
// development.
func ParseMode(raw string) Mode {
	if raw == string(Production) {
		return Production
	}
	return Development
}

// Vars is a snapshot of environment variables.
type Vars map[string]string

// FromEnviron builds a snapshot from "KEY=value" pairs as returned by
// os.Environ. Entries without '=' are ignored.
func FromEnviron(environ []string) Vars {
	vars := make(Vars, len(environ))
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}

// Merge returns a new snapshot containing every layer, later layers winning.
func Merge(layers ...Vars) Vars {
	out := make(Vars)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// With returns a copy of v with key set to value.
func (v Vars) With(key, value string) Vars {
	return Merge(v, Vars{key: value})
}

// Environment is what the resolver needs to know about its surroundings.
type Environment struct {
	Mode      Mode
	Overrides map[string]string
}

// OverrideKeys returns the override names in sorted order.
func (e Environment) OverrideKeys() []string {
	keys := make([]string, 0, len(e.Overrides))
	for k := range e.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Read extracts the build mode and the override variables. It never fails:
// a missing or unrecognised mode is development.
func Read(vars Vars) Environment {
	overrides := make(map[string]string)
	for k, v := range vars {
		for _, prefix := range overridePrefixes {
			if strings.HasPrefix(k, prefix) {
				overrides[k] = v
				break
			}
		}
	}
	return Environment{
		Mode:      ParseMode(vars[ModeVar]),
		Overrides: overrides,
	}
}
