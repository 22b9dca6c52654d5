// Package schema holds the gohcl decoding targets for project files.
package schema
