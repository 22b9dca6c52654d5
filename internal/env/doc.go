// Package env reads the build mode and override variables from an explicit
// snapshot of environment variables. Nothing in this package consults the
// process environment on its own; callers pass os.Environ() (or a test map)
// in, which keeps resolution free of hidden global state.
//
// Dotenv mode files are supported the way front-end tooling lays them out:
//
//	.env                # loaded in every mode
//	.env.local          # loaded in every mode, git-ignored
//	.env.[mode]         # loaded only in the given mode
//	.env.[mode].local   # loaded only in the given mode, git-ignored
//
// Later files win, and the process environment wins over every file.
package env
