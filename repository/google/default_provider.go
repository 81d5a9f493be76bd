package google

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
)

// DefaultScopes are requested when reading Application Default Credentials.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/cloud-platform.read-only",
}

// DefaultFinder locates Application Default Credentials.
type DefaultFinder func(ctx context.Context, scopes ...string) (oauth2.TokenSource, error)

// DefaultCredentialProvider implements ports.CredentialProvider.
// It prefers Application Default Credentials and falls back to the gcloud CLI.
type DefaultCredentialProvider struct {
	findDefault   DefaultFinder
	runner        CommandRunner
	logger        *slog.Logger
	gcloudCommand string
	scopes        []string
}

// Option configures a DefaultCredentialProvider.
type Option func(*DefaultCredentialProvider)

// WithScopes overrides the OAuth2 scopes requested from ADC.
func WithScopes(scopes ...string) Option {
	return func(p *DefaultCredentialProvider) { p.scopes = scopes }
}

// WithGcloudCommand sets the gcloud executable.
func WithGcloudCommand(command string) Option {
	return func(p *DefaultCredentialProvider) {
		if command != "" {
			p.gcloudCommand = command
		}
	}
}

// WithCommandRunner replaces the process runner used for gcloud.
func WithCommandRunner(run CommandRunner) Option {
	return func(p *DefaultCredentialProvider) { p.runner = run }
}

// WithDefaultFinder replaces the Application Default Credentials lookup.
func WithDefaultFinder(find DefaultFinder) Option {
	return func(p *DefaultCredentialProvider) { p.findDefault = find }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *DefaultCredentialProvider) { p.logger = l }
}

// NewDefaultCredentialProvider creates a provider with the given options.
func NewDefaultCredentialProvider(opts ...Option) *DefaultCredentialProvider {
	p := &DefaultCredentialProvider{
		findDefault:   findApplicationDefault,
		gcloudCommand: DefaultGcloudCommand(),
		scopes:        DefaultScopes,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetCredential returns an ADC-backed credential, or a gcloud-backed one when ADC
// is not configured. The gcloud source is probed once so a missing CLI fails here
// rather than at refresh time.
func (p *DefaultCredentialProvider) GetCredential(ctx context.Context) (ports.Credential, error) {
	src, adcErr := p.findDefault(ctx, p.scopes...)
	if adcErr == nil {
		p.logger.Debug("using application default credentials")
		return NewCredential(src), nil
	}
	p.logger.Info("application default credentials unavailable, trying gcloud",
		"gcloud", p.gcloudCommand,
		"error", adcErr)

	gcloud := NewGcloudTokenSource(ctx, p.gcloudCommand, p.runner)
	tok, err := gcloud.Token()
	if err != nil {
		return nil, fmt.Errorf("application default credentials: %v; gcloud: %w", adcErr, err)
	}

	p.logger.Debug("using gcloud credentials", "gcloud", p.gcloudCommand)
	return NewCredential(oauth2.ReuseTokenSource(tok, gcloud)), nil
}

func findApplicationDefault(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, err
	}
	return creds.TokenSource, nil
}
