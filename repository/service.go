// Package repository wires credential acquisition and the rewrite rule into a
// configuration pass over a host's repository declarations.
package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/reglet-dev/artifactregistry-auth/netutil"
	"github.com/reglet-dev/artifactregistry-auth/repository/entities"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
	"github.com/reglet-dev/artifactregistry-auth/repository/services"
	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// ConfigurationService orchestrates one configuration pass.
// Coordinates the credential provider and the repository rewriter.
type ConfigurationService struct {
	provider ports.CredentialProvider
	rewriter *services.RepositoryRewriter
	logger   *slog.Logger
}

// ConfigurationServiceOption configures a ConfigurationService.
type ConfigurationServiceOption func(*ConfigurationService)

// NewConfigurationService creates a configuration service.
// The credential provider is a required dependency.
func NewConfigurationService(
	provider ports.CredentialProvider,
	opts ...ConfigurationServiceOption,
) *ConfigurationService {
	s := &ConfigurationService{
		provider: provider,
		rewriter: services.NewRepositoryRewriter(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithRewriter sets the repository rewriter.
func WithRewriter(r *services.RepositoryRewriter) ConfigurationServiceOption {
	return func(s *ConfigurationService) { s.rewriter = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ConfigurationServiceOption {
	return func(s *ConfigurationService) { s.logger = l }
}

// AcquireCredentials fetches a credential from the provider, refreshes it if expired,
// and wraps the access token in a basic-auth pair.
// Every failure is reported as *entities.CredentialAcquisitionError.
func (s *ConfigurationService) AcquireCredentials(ctx context.Context) (values.CredentialPair, error) {
	if s.provider == nil {
		return values.CredentialPair{}, &entities.CredentialAcquisitionError{Err: errors.New("no credential provider configured")}
	}

	credential, err := s.provider.GetCredential(ctx)
	if err != nil {
		return values.CredentialPair{}, &entities.CredentialAcquisitionError{Err: err}
	}

	token, err := credential.RefreshIfExpired(ctx)
	if err != nil {
		return values.CredentialPair{}, &entities.CredentialAcquisitionError{Err: err}
	}
	if token.IsZero() {
		return values.CredentialPair{}, &entities.CredentialAcquisitionError{Err: errors.New("provider returned an empty access token")}
	}

	s.logger.Debug("access token acquired", "expiry", token.Expiry())
	return values.NewAccessTokenCredentials(token), nil
}

// ConfigureRepositories applies the rewrite rule to each declaration in order.
// The first error aborts the pass; declarations already rewritten stay rewritten.
func (s *ConfigurationService) ConfigureRepositories(
	decls []ports.Declaration,
	creds values.CredentialPair,
) error {
	for _, decl := range decls {
		if decl == nil {
			continue
		}

		original := ""
		if remote, ok := decl.(ports.RemoteRepository); ok && remote.URL() != nil {
			raw := remote.RawURL()
			original = netutil.StripCredentials(raw)
			if netutil.IsArtifactRegistry(raw) && netutil.HasCredentials(raw) {
				s.logger.Warn("user info in artifact registry URL is not carried over",
					"repository", decl.Name(),
					"url", original)
			}
		}

		outcome, err := s.rewriter.Rewrite(decl, creds)
		if err != nil {
			return err
		}

		if outcome.Changed() {
			remote := decl.(ports.RemoteRepository)
			s.logger.Info("artifact registry repository configured",
				"repository", decl.Name(),
				"host", netutil.ExtractHost(remote.URL().String()),
				"from", original,
				"to", remote.URL().String(),
				"outcome", outcome.String())
		} else {
			s.logger.Debug("repository skipped",
				"repository", decl.Name(),
				"kind", decl.Kind().String(),
				"outcome", outcome.String())
		}
	}
	return nil
}
