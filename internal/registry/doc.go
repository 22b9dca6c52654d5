// Package registry provides the glue between compiled-in extension plugins
// and the extension blocks of a project file.
//
// Extension modules register themselves under a name together with their
// default modes and options. A project file selects registered extensions by
// that name; Select validates the selection and turns it into the
// plan.Extension values appended after the baseline plugin list. Nothing is
// selected by default, so the baseline plugin list stays unchanged unless a
// project explicitly opts in.
package registry
