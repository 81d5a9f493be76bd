package repository

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// MockProvider implements ports.CredentialProvider
type MockProvider struct {
	Credential ports.Credential
	Err        error
	Calls      int
}

func (m *MockProvider) GetCredential(ctx context.Context) (ports.Credential, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Credential, nil
}

// MockCredential implements ports.Credential
type MockCredential struct {
	Token      values.AccessToken
	RefreshErr error
	Refreshes  int
}

func (m *MockCredential) RefreshIfExpired(ctx context.Context) (values.AccessToken, error) {
	m.Refreshes++
	if m.RefreshErr != nil {
		return values.AccessToken{}, m.RefreshErr
	}
	return m.Token, nil
}

// NewMockProvider returns a provider whose credential always yields token.
func NewMockProvider(token string) *MockProvider {
	return &MockProvider{
		Credential: &MockCredential{Token: values.NewAccessToken(token, time.Time{})},
	}
}

// MockDeclaration implements ports.Declaration for a variant unknown to the rewriter.
type MockDeclaration struct {
	DeclName string
	DeclKind values.RepositoryKind
}

func (m *MockDeclaration) Name() string { return m.DeclName }

func (m *MockDeclaration) Kind() values.RepositoryKind { return m.DeclKind }

func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
