// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for project file discovery, parsing, and the
// translation of decoded blocks into the format-agnostic config.Project.
package hcl
