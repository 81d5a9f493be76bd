package host

import (
	"log/slog"

	"github.com/reglet-dev/artifactregistry-auth/repository"
)

// Option defines a functional option for configuring the Plugin.
type Option func(*Plugin)

// WithConfigurationService replaces the service performing the configuration pass.
func WithConfigurationService(svc *repository.ConfigurationService) Option {
	return func(p *Plugin) {
		p.service = svc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = l
	}
}
