package ports

import (
	"net/url"

	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// Declaration is a repository declaration owned by the build host.
// The host keeps ownership; callers only borrow it for the duration of a pass.
type Declaration interface {
	// Name returns the declaration's display name.
	Name() string

	// Kind returns the repository variant.
	Kind() values.RepositoryKind
}

// RemoteRepository is a declaration addressed by URL that can carry credentials.
type RemoteRepository interface {
	Declaration

	// URL returns the repository location, or nil if none is configured.
	URL() *url.URL

	// RawURL returns the location exactly as declared, before parsing.
	RawURL() string

	// SetURL replaces the repository location.
	SetURL(u *url.URL)

	// Credentials returns the explicitly configured credentials, if any.
	Credentials() (values.CredentialPair, bool)

	// SetCredentials configures explicit credentials.
	SetCredentials(creds values.CredentialPair)

	// Authentication returns the configured authentication schemes.
	Authentication() []values.AuthScheme

	// AddAuthentication adds an authentication scheme.
	AddAuthentication(scheme values.AuthScheme)
}
