// Package netutil provides URL helpers shared by the CLI and the repository service.
package netutil

import (
	"net/url"
	"strings"
)

// StripCredentials removes user:password@ from a URL for safe logging.
// Returns the original string if the URL cannot be parsed.
func StripCredentials(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// Clear user info
	parsed.User = nil

	return parsed.String()
}

// HasCredentials returns true if the URL contains credentials.
func HasCredentials(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.User != nil
}

// ExtractHost returns just the host:port from a URL.
func ExtractHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

// IsArtifactRegistry returns true if the URL uses the artifactregistry scheme.
// Matching is case-sensitive on the text as written, mirroring the rewrite rule.
func IsArtifactRegistry(rawURL string) bool {
	if !strings.HasPrefix(rawURL, "artifactregistry:") {
		return false
	}
	_, err := url.Parse(rawURL)
	return err == nil
}

// MavenRegistryURL builds the artifactregistry:// URL of a Maven repository
// hosted in the given location and project.
func MavenRegistryURL(location, project, repository string) string {
	u := url.URL{
		Scheme: "artifactregistry",
		Host:   strings.ToLower(location) + "-maven.pkg.dev",
		Path:   "/" + project + "/" + repository,
	}
	return u.String()
}
