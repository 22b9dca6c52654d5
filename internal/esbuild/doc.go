// Package esbuild hands a resolved build configuration to esbuild through
// its Go API. Descriptors without an esbuild equivalent (the Vue framework
// integration, the auto-import resolvers and registered extensions) are
// skipped with a debug log: they are consumed by executors that understand
// them, and esbuild only needs the define map, base path and browser targets.
package esbuild
