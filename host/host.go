// Package host adapts the repository configuration pass to a build host's lifecycle.
package host

import (
	"context"

	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
)

// ProjectAction runs against a single project once it has been evaluated.
type ProjectAction func(ctx context.Context, project Project) error

// SettingsAction runs once the host's settings have been evaluated.
type SettingsAction func(ctx context.Context, settings Settings) error

// BuildAction runs once every project of a build has been evaluated.
type BuildAction func(ctx context.Context, build Build) error

// Project is a unit of build configuration owning repository declarations.
type Project interface {
	Name() string

	// Repositories returns the project's dependency repositories.
	Repositories() []ports.Declaration

	// PublishingRepositories returns the publishing repositories, or false when the
	// publishing extension is not present.
	PublishingRepositories() ([]ports.Declaration, bool)

	// AfterEvaluate registers an action to run after the project is evaluated.
	AfterEvaluate(action ProjectAction)
}

// Build is the whole-build lifecycle scope.
type Build interface {
	// SettingsEvaluated registers an action to run once settings are evaluated.
	SettingsEvaluated(action SettingsAction)

	// ProjectsEvaluated registers an action to run once every project is evaluated.
	ProjectsEvaluated(action BuildAction)

	// AllProjects returns every project in the build.
	AllProjects() []Project
}

// Settings is the pre-project configuration scope.
type Settings interface {
	// PluginManagementRepositories returns the repositories used to resolve plugins,
	// or false when plugin management is not configured.
	PluginManagementRepositories() ([]ports.Declaration, bool)

	// Build returns the build these settings belong to.
	Build() Build
}
