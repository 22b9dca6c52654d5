package app

import (
	"slices"

	"github.com/specialistvlad/buildplan/internal/config"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/plan"
)

// settingsFromProject applies the project's overrides to the default settings.
func settingsFromProject(p *config.Project) plan.Settings {
	s := plan.DefaultSettings()
	if p == nil {
		return s
	}
	if p.Theme != nil {
		if p.Theme.Resolver != "" {
			s.Theme.Name = p.Theme.Resolver
		}
		s.Theme.Library = p.Theme.Library
	}
	if p.Legacy != nil {
		s.LegacyTargets = slices.Clone(p.Legacy.Targets)
	}
	return s
}

// revisionSource maps the configured revision source name to a plan.RevisionSource.
// A nil source makes the resolver use plan.FallbackRevision.
func (a *App) revisionSource(dir string, e env.Environment) plan.RevisionSource {
	switch a.config.Revision {
	case RevisionEnv:
		return plan.EnvRevision{Overrides: e.Overrides}
	case RevisionGit:
		return plan.FirstRevision{
			plan.EnvRevision{Overrides: e.Overrides},
			plan.GitRevision{Dir: dir},
		}
	default:
		return nil
	}
}
