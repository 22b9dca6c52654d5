package hcl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/buildplan/internal/config"
	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/fsutil"
	"github.com/specialistvlad/buildplan/internal/schema"
)

// Extension of project files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every project file under paths and merges them. A path may be
// a single file or a directory, in which case the .hcl files directly inside
// it are read in name order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findProjectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered project files.", "count", len(files))

	project := &config.Project{}
	parser := hclparse.NewParser()

	var themeRange, legacyRange *hcl.Range
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.ProjectFile
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, t := range root.Themes {
			if themeRange != nil {
				return nil, duplicateBlock("theme", *themeRange, t.DefRange)
			}
			themeRange = &t.DefRange
			project.Theme = translateTheme(t)
		}
		for _, lg := range root.Legacies {
			if legacyRange != nil {
				return nil, duplicateBlock("legacy", *legacyRange, lg.DefRange)
			}
			legacyRange = &lg.DefRange
			project.Legacy = translateLegacy(lg)
		}
		for _, decl := range root.Extensions {
			ext, err := translateExtension(decl)
			if err != nil {
				return nil, err
			}
			project.Extensions = append(project.Extensions, ext)
		}
		project.Files = append(project.Files, file)
	}

	logger.Debug("HCL loading complete.",
		"files", len(project.Files),
		"theme", project.Theme != nil,
		"legacy", project.Legacy != nil,
		"extensions", len(project.Extensions),
	)
	return project, nil
}

func duplicateBlock(name string, first, second hcl.Range) error {
	return fmt.Errorf("%s: duplicate %q block, already declared at %s", second.String(), name, first.String())
}

// findProjectFiles expands paths into a flat, de-duplicated list of files.
func (l *Loader) findProjectFiles(ctx context.Context, paths []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		all = append(all, p)
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Project path does not exist, skipping.", "path", path)
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := fsutil.FindFilesByExtension(path, Extension)
			if err != nil {
				return nil, fmt.Errorf("failed to list project files in %s: %w", path, err)
			}
			for _, f := range files {
				add(f)
			}
		} else if filepath.Ext(path) == Extension {
			add(path)
		} else {
			return nil, fmt.Errorf("project file %s: expected a %s file", path, Extension)
		}
	}
	return all, nil
}
