package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/artifactregistry-auth/repository"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// Plugin registers the Artifact Registry rewrite with a host lifecycle.
type Plugin struct {
	service *repository.ConfigurationService
	logger  *slog.Logger
}

// NewPlugin creates a plugin acquiring credentials from provider.
func NewPlugin(provider ports.CredentialProvider, opts ...Option) *Plugin {
	p := &Plugin{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.service == nil {
		p.service = repository.NewConfigurationService(provider, repository.WithLogger(p.logger))
	}
	return p
}

// Apply acquires credentials and registers the rewrite on target.
// Credentials are acquired before any registration; a failure aborts Apply.
// Targets that are not a Project, Build or Settings are ignored.
func (p *Plugin) Apply(ctx context.Context, target any) error {
	creds, err := p.service.AcquireCredentials(ctx)
	if err != nil {
		return err
	}

	switch t := target.(type) {
	case Project:
		p.logger.Debug("registering after-evaluate action", "project", t.Name())
		t.AfterEvaluate(p.projectAction(creds))
	case Build:
		p.applyBuild(t, creds)
	case Settings:
		p.applyBuild(t.Build(), creds)
	default:
		p.logger.Debug("unsupported plugin target ignored", "target", fmt.Sprintf("%T", target))
	}
	return nil
}

func (p *Plugin) applyBuild(build Build, creds values.CredentialPair) {
	build.SettingsEvaluated(func(_ context.Context, settings Settings) error {
		repos, ok := settings.PluginManagementRepositories()
		if !ok {
			return nil
		}
		if err := p.service.ConfigureRepositories(repos, creds); err != nil {
			return fmt.Errorf("plugin management repositories: %w", err)
		}
		return nil
	})

	action := p.projectAction(creds)
	build.ProjectsEvaluated(func(ctx context.Context, b Build) error {
		for _, project := range b.AllProjects() {
			if err := action(ctx, project); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Plugin) projectAction(creds values.CredentialPair) ProjectAction {
	return func(_ context.Context, project Project) error {
		if err := p.service.ConfigureRepositories(project.Repositories(), creds); err != nil {
			return fmt.Errorf("project %s: %w", project.Name(), err)
		}

		publishing, ok := project.PublishingRepositories()
		if !ok {
			return nil
		}
		if err := p.service.ConfigureRepositories(publishing, creds); err != nil {
			return fmt.Errorf("project %s publishing: %w", project.Name(), err)
		}
		return nil
	}
}
