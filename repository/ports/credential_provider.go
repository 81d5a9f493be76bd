// Package ports defines the interfaces the repository domain depends on.
package ports

import (
	"context"

	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// CredentialProvider retrieves an ambient credential, e.g. Application Default Credentials.
type CredentialProvider interface {
	// GetCredential returns a credential that can produce access tokens.
	GetCredential(ctx context.Context) (Credential, error)
}

// Credential produces short-lived access tokens.
type Credential interface {
	// RefreshIfExpired returns the current access token, refreshing it first if it expired.
	RefreshIfExpired(ctx context.Context) (values.AccessToken, error)
}
