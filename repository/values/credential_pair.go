package values

import "fmt"

// AccessTokenUsername is the fixed username Artifact Registry expects when a raw OAuth2
// access token is presented as a basic-auth password.
const AccessTokenUsername = "oauth2accesstoken"

// CredentialPair is a username/password pair used for HTTP Basic authentication.
// Immutable after creation.
type CredentialPair struct {
	username string
	password string
}

// NewCredentialPair creates a credential pair from its parts.
func NewCredentialPair(username, password string) CredentialPair {
	return CredentialPair{
		username: username,
		password: password,
	}
}

// NewAccessTokenCredentials wraps an access token in the pair Artifact Registry accepts.
func NewAccessTokenCredentials(token AccessToken) CredentialPair {
	return NewCredentialPair(AccessTokenUsername, token.Value())
}

// Username returns the username.
func (c CredentialPair) Username() string {
	return c.username
}

// Password returns the secret.
func (c CredentialPair) Password() string {
	return c.password
}

// IsZero reports whether both parts are empty.
func (c CredentialPair) IsZero() bool {
	return c.username == "" && c.password == ""
}

// Equals checks equality with another pair.
func (c CredentialPair) Equals(other CredentialPair) bool {
	return c.username == other.username && c.password == other.password
}

// String returns the pair with the password redacted, safe for logging.
func (c CredentialPair) String() string {
	if c.password == "" {
		return c.username
	}
	return fmt.Sprintf("%s:%s", c.username, Redacted)
}

// Redacted replaces secrets in human readable output.
const Redacted = "<redacted>"
