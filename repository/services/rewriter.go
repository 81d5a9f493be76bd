// Package services contains the domain logic for rewriting repository declarations.
package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/reglet-dev/artifactregistry-auth/repository/entities"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// Outcome describes what Rewrite did to a declaration.
type Outcome int

const (
	// OutcomeIgnored means the declaration is not a remote Maven repository.
	OutcomeIgnored Outcome = iota
	// OutcomeUnmatched means the URL does not use the artifactregistry scheme.
	OutcomeUnmatched
	// OutcomeRewritten means the URL was rewritten and existing credentials were kept.
	OutcomeRewritten
	// OutcomeAuthenticated means the URL was rewritten and credentials were attached.
	OutcomeAuthenticated
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeUnmatched:
		return "unmatched"
	case OutcomeRewritten:
		return "rewritten"
	case OutcomeAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Changed reports whether the declaration was modified.
func (o Outcome) Changed() bool {
	return o == OutcomeRewritten || o == OutcomeAuthenticated
}

// RepositoryRewriter rewrites artifactregistry:// declarations to HTTPS and attaches credentials.
type RepositoryRewriter struct{}

// NewRepositoryRewriter creates a repository rewriter.
func NewRepositoryRewriter() *RepositoryRewriter {
	return &RepositoryRewriter{}
}

// Rewrite applies the rewrite rule to a single declaration, mutating it in place.
// Only URL reconstruction failures are errors; everything else is a no-op.
func (r *RepositoryRewriter) Rewrite(decl ports.Declaration, creds values.CredentialPair) (Outcome, error) {
	if decl == nil || decl.Kind() != values.KindMaven {
		return OutcomeIgnored, nil
	}
	repo, ok := decl.(ports.RemoteRepository)
	if !ok {
		return OutcomeIgnored, nil
	}

	u := repo.URL()
	if u == nil || !HasArtifactRegistryScheme(repo.RawURL()) {
		return OutcomeUnmatched, nil
	}

	rewritten, err := RewriteURL(u)
	if err != nil {
		return OutcomeUnmatched, &entities.URLRewriteError{URL: repo.RawURL(), Err: err}
	}
	repo.SetURL(rewritten)

	// Explicitly configured credentials always win.
	if _, configured := repo.Credentials(); configured {
		return OutcomeRewritten, nil
	}
	repo.SetCredentials(creds)
	repo.AddAuthentication(values.AuthBasic)

	return OutcomeAuthenticated, nil
}

// HasArtifactRegistryScheme reports whether rawURL starts with the
// artifactregistry scheme. The comparison is case-sensitive.
func HasArtifactRegistryScheme(rawURL string) bool {
	return strings.HasPrefix(rawURL, values.ArtifactRegistryScheme+":")
}

// RewriteURL rebuilds u as https://host/path#fragment.
// Only the hostname, path and fragment are carried over: port, user info and the
// query component are dropped.
func RewriteURL(u *url.URL) (*url.URL, error) {
	if u.Opaque != "" {
		return nil, errors.New("opaque URL has no host")
	}

	host := u.Hostname()
	if host == "" {
		return nil, errors.New("missing host")
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	if u.Path != "" && !strings.HasPrefix(u.Path, "/") {
		return nil, fmt.Errorf("relative path %q in absolute URL", u.Path)
	}

	out := &url.URL{
		Scheme:      "https",
		Host:        host,
		Path:        u.Path,
		RawPath:     u.RawPath,
		Fragment:    u.Fragment,
		RawFragment: u.RawFragment,
	}

	// Round-trip to catch host/path combinations that do not form a valid URL.
	parsed, err := url.Parse(out.String())
	if err != nil {
		return nil, fmt.Errorf("rebuild url: %w", err)
	}
	return parsed, nil
}
