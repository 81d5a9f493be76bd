// Package google implements the credential provider port with Google Application
// Default Credentials and the gcloud CLI.
package google

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// Credential adapts an oauth2.TokenSource to ports.Credential.
type Credential struct {
	source oauth2.TokenSource
}

// NewCredential wraps src so tokens are reused until they expire.
func NewCredential(src oauth2.TokenSource) *Credential {
	return &Credential{source: oauth2.ReuseTokenSource(nil, src)}
}

// RefreshIfExpired returns the cached token, fetching a new one once it expired.
func (c *Credential) RefreshIfExpired(ctx context.Context) (values.AccessToken, error) {
	if err := ctx.Err(); err != nil {
		return values.AccessToken{}, err
	}

	tok, err := c.source.Token()
	if err != nil {
		return values.AccessToken{}, fmt.Errorf("refresh access token: %w", err)
	}
	if tok.AccessToken == "" {
		return values.AccessToken{}, errors.New("token source returned an empty access token")
	}
	return values.NewAccessToken(tok.AccessToken, tok.Expiry), nil
}
