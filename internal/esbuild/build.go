package esbuild

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/plan"
)

// ErrBuildFailed wraps the errors reported by esbuild.
var ErrBuildFailed = errors.New("esbuild build failed")

// Build runs esbuild for cfg and returns the produced files. esbuild
// messages are surfaced verbatim.
func Build(ctx context.Context, cfg *plan.ResolvedConfig, target Target) ([]api.OutputFile, error) {
	logger := ctxlog.FromContext(ctx)
	if len(target.EntryPoints) == 0 {
		return nil, fmt.Errorf("%w: no entry points", ErrBuildFailed)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := Options(ctx, cfg, target)
	logger.Info("Starting esbuild.", "entry_points", target.EntryPoints, "outdir", target.OutDir, "mode", cfg.Mode())

	result := api.Build(opts)
	for _, w := range result.Warnings {
		logger.Warn("esbuild warning.", "text", w.Text, "location", location(w))
	}
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			if loc := location(e); loc != "" {
				msgs = append(msgs, loc+": "+e.Text)
			} else {
				msgs = append(msgs, e.Text)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrBuildFailed, strings.Join(msgs, "; "))
	}

	logger.Info("esbuild finished.", "output_files", len(result.OutputFiles))
	return result.OutputFiles, nil
}

func location(m api.Message) string {
	if m.Location == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", m.Location.File, m.Location.Line, m.Location.Column)
}
