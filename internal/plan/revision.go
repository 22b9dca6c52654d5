package plan

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/specialistvlad/buildplan/internal/ctxlog"
)

// FallbackRevision is used whenever no real revision is available.
const FallbackRevision = "local"

// RevisionOverrideVar names the override variable read by EnvRevision.
const RevisionOverrideVar = "BUILDPLAN_COMMIT_HASH"

// RevisionSource supplies the revision identifier. ok is false when the
// source has nothing to offer.
type RevisionSource interface {
	Revision(ctx context.Context) (rev string, ok bool)
}

// StaticRevision always reports the same identifier.
type StaticRevision string

func (s StaticRevision) Revision(context.Context) (string, bool) {
	rev := strings.TrimSpace(string(s))
	return rev, rev != ""
}

// EnvRevision reads RevisionOverrideVar from the environment overrides.
type EnvRevision struct {
	Overrides map[string]string
}

func (e EnvRevision) Revision(context.Context) (string, bool) {
	rev := strings.TrimSpace(e.Overrides[RevisionOverrideVar])
	return rev, rev != ""
}

// GitRevision asks git for the abbreviated HEAD commit of Dir.
type GitRevision struct {
	Dir string
}

func (g GitRevision) Revision(ctx context.Context) (string, bool) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--short", "HEAD")
	cmd.Dir = g.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		ctxlog.FromContext(ctx).Debug("git revision unavailable.", "dir", g.Dir, "error", err, "stderr", strings.TrimSpace(stderr.String()))
		return "", false
	}
	rev := strings.TrimSpace(string(out))
	return rev, rev != ""
}

// FirstRevision tries each source in order.
type FirstRevision []RevisionSource

func (f FirstRevision) Revision(ctx context.Context) (string, bool) {
	for _, src := range f {
		if src == nil {
			continue
		}
		if rev, ok := src.Revision(ctx); ok {
			return rev, true
		}
	}
	return "", false
}

func resolveRevision(ctx context.Context, src RevisionSource) string {
	if src == nil {
		return FallbackRevision
	}
	if rev, ok := src.Revision(ctx); ok && rev != "" {
		return rev
	}
	return FallbackRevision
}
