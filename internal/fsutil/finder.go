// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension returns the regular files directly inside dir whose
// name ends with extension, sorted by name. Subdirectories are not searched:
// a project directory often contains node_modules and build output.
func FindFilesByExtension(dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), extension) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ProjectDir returns the directory a project path refers to: the path itself
// when it is a directory, its parent otherwise. An empty path is ".".
func ProjectDir(path string) string {
	if path == "" {
		return "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
