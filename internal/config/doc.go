// Package config defines the format-agnostic project model and the Loader
// interface used to read it.
//
// A project file is optional. It may override the theme resolver and the
// legacy browser targets, and it selects extension plugins by name. The
// `config.Project` is the only thing the app layer sees; the concrete HCL
// implementation lives in the hcl package.
package config
