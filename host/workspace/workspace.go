// Package workspace implements an in-memory build host read from a YAML workspace file.
package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/reglet-dev/artifactregistry-auth/host"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
)

// Workspace is a build made of a settings scope and a list of projects.
// It implements host.Build. It is not safe for concurrent use.
type Workspace struct {
	settings        *Settings
	schemaVersion   string
	projects        []*Project
	settingsActions []host.SettingsAction
	projectsActions []host.BuildAction
}

// New creates an empty workspace at the current schema version.
func New() *Workspace {
	w := &Workspace{schemaVersion: CurrentSchemaVersion}
	w.settings = &Settings{build: w}
	return w
}

// Settings returns the workspace settings.
func (w *Workspace) Settings() *Settings {
	return w.settings
}

// Projects returns the workspace projects in declaration order.
func (w *Workspace) Projects() []*Project {
	return slices.Clone(w.projects)
}

// Project returns the project with the given name.
func (w *Workspace) Project(name string) (*Project, bool) {
	for _, p := range w.projects {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// AddProject appends a project. Project names must be unique.
func (w *Workspace) AddProject(p *Project) error {
	if _, exists := w.Project(p.name); exists {
		return fmt.Errorf("%w: duplicate project %q", ErrInvalidWorkspace, p.name)
	}
	w.projects = append(w.projects, p)
	return nil
}

// AllProjects implements host.Build.
func (w *Workspace) AllProjects() []host.Project {
	out := make([]host.Project, 0, len(w.projects))
	for _, p := range w.projects {
		out = append(out, p)
	}
	return out
}

// SettingsEvaluated implements host.Build.
func (w *Workspace) SettingsEvaluated(action host.SettingsAction) {
	w.settingsActions = append(w.settingsActions, action)
}

// ProjectsEvaluated implements host.Build.
func (w *Workspace) ProjectsEvaluated(action host.BuildAction) {
	w.projectsActions = append(w.projectsActions, action)
}

// Evaluate runs the registered lifecycle actions: settings-evaluated actions first,
// then each project's after-evaluate actions in project order, then
// projects-evaluated actions. The first error stops evaluation.
func (w *Workspace) Evaluate(ctx context.Context) error {
	for _, action := range w.settingsActions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := action(ctx, w.settings); err != nil {
			return fmt.Errorf("settings evaluated: %w", err)
		}
	}

	for _, p := range w.projects {
		for _, action := range p.actions {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := action(ctx, p); err != nil {
				return fmt.Errorf("after evaluate: %w", err)
			}
		}
	}

	for _, action := range w.projectsActions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := action(ctx, w); err != nil {
			return fmt.Errorf("projects evaluated: %w", err)
		}
	}
	return nil
}

// ScopedDeclaration is a declaration together with where it was declared.
type ScopedDeclaration struct {
	Declaration ports.Declaration
	Scope       string
}

// Declarations returns every declaration in the workspace.
// Scopes are "pluginManagement", "<project>" and "<project>/publishing".
func (w *Workspace) Declarations() []ScopedDeclaration {
	var out []ScopedDeclaration
	add := func(scope string, decls []ports.Declaration) {
		for _, d := range decls {
			out = append(out, ScopedDeclaration{Scope: scope, Declaration: d})
		}
	}

	if repos, ok := w.settings.PluginManagementRepositories(); ok {
		add("pluginManagement", repos)
	}
	for _, p := range w.projects {
		add(p.name, p.repositories)
		if p.publishing != nil {
			add(p.name+"/publishing", p.publishing)
		}
	}
	return out
}

// Settings is the workspace's settings scope. It implements host.Settings.
type Settings struct {
	build            *Workspace
	pluginManagement []ports.Declaration
}

// SetPluginManagementRepositories configures plugin management.
// A nil slice removes it.
func (s *Settings) SetPluginManagementRepositories(decls []ports.Declaration) {
	s.pluginManagement = decls
}

// PluginManagementRepositories implements host.Settings.
func (s *Settings) PluginManagementRepositories() ([]ports.Declaration, bool) {
	return s.pluginManagement, s.pluginManagement != nil
}

// Build implements host.Settings.
func (s *Settings) Build() host.Build {
	return s.build
}

// Project is a workspace project. It implements host.Project.
type Project struct {
	name         string
	repositories []ports.Declaration
	publishing   []ports.Declaration
	actions      []host.ProjectAction
}

// NewProject creates a project. A nil publishing slice means the project does not publish.
func NewProject(name string, repositories, publishing []ports.Declaration) *Project {
	return &Project{
		name:         name,
		repositories: repositories,
		publishing:   publishing,
	}
}

// Name implements host.Project.
func (p *Project) Name() string {
	return p.name
}

// Repositories implements host.Project.
func (p *Project) Repositories() []ports.Declaration {
	return p.repositories
}

// PublishingRepositories implements host.Project.
func (p *Project) PublishingRepositories() ([]ports.Declaration, bool) {
	return p.publishing, p.publishing != nil
}

// AfterEvaluate implements host.Project.
func (p *Project) AfterEvaluate(action host.ProjectAction) {
	p.actions = append(p.actions, action)
}
