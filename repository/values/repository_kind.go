// Package values contains immutable value objects shared by the repository domain.
package values

import "fmt"

// ArtifactRegistryScheme is the URL scheme that opts a repository into rewriting.
const ArtifactRegistryScheme = "artifactregistry"

// RepositoryKind identifies the variant of a repository declaration.
type RepositoryKind string

const (
	KindMaven   RepositoryKind = "maven"
	KindIvy     RepositoryKind = "ivy"
	KindFlatDir RepositoryKind = "flatDir"
)

// ParseRepositoryKind validates a kind string.
func ParseRepositoryKind(s string) (RepositoryKind, error) {
	switch k := RepositoryKind(s); k {
	case KindMaven, KindIvy, KindFlatDir:
		return k, nil
	default:
		return "", fmt.Errorf("unknown repository type %q", s)
	}
}

// String returns the kind name.
func (k RepositoryKind) String() string {
	return string(k)
}

// AuthScheme names an authentication mechanism attached to a repository.
type AuthScheme string

// AuthBasic is HTTP Basic authentication.
const AuthBasic AuthScheme = "basic"

// String returns the scheme name.
func (a AuthScheme) String() string {
	return string(a)
}

// ParseAuthScheme validates an authentication scheme name.
func ParseAuthScheme(s string) (AuthScheme, error) {
	if AuthScheme(s) != AuthBasic {
		return "", fmt.Errorf("unsupported authentication scheme %q", s)
	}
	return AuthBasic, nil
}
