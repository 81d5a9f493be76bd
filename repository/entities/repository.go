// Package entities contains the repository declarations and errors of the domain model.
package entities

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// MavenRepository is a remote Maven repository declaration.
// It is the only variant eligible for Artifact Registry rewriting.
type MavenRepository struct {
	remote
}

// NewMavenRepository creates a Maven repository declaration.
func NewMavenRepository(name string, u *url.URL) *MavenRepository {
	return &MavenRepository{remote: newRemote(name, u)}
}

// ParseMavenRepository creates a Maven repository declaration from the URL as written.
// The text is kept verbatim and returned by RawURL.
func ParseMavenRepository(name, rawURL string) (*MavenRepository, error) {
	r, err := parseRemote(name, rawURL)
	if err != nil {
		return nil, err
	}
	return &MavenRepository{remote: r}, nil
}

// Name returns the declaration name, or "" for a nil repository.
func (r *MavenRepository) Name() string {
	if r == nil {
		return ""
	}
	return r.remote.Name()
}

// URL returns the repository location, or nil for a nil repository.
func (r *MavenRepository) URL() *url.URL {
	if r == nil {
		return nil
	}
	return r.remote.URL()
}

// RawURL returns the repository location as written, or "" for a nil repository.
func (r *MavenRepository) RawURL() string {
	if r == nil {
		return ""
	}
	return r.remote.RawURL()
}

// Kind returns values.KindMaven.
func (r *MavenRepository) Kind() values.RepositoryKind {
	return values.KindMaven
}

// IvyRepository is a remote Ivy repository declaration.
// It carries a URL and credentials but is never rewritten.
type IvyRepository struct {
	remote
}

// NewIvyRepository creates an Ivy repository declaration.
func NewIvyRepository(name string, u *url.URL) *IvyRepository {
	return &IvyRepository{remote: newRemote(name, u)}
}

// ParseIvyRepository creates an Ivy repository declaration from the URL as written.
func ParseIvyRepository(name, rawURL string) (*IvyRepository, error) {
	r, err := parseRemote(name, rawURL)
	if err != nil {
		return nil, err
	}
	return &IvyRepository{remote: r}, nil
}

func (r *IvyRepository) Name() string {
	if r == nil {
		return ""
	}
	return r.remote.Name()
}

func (r *IvyRepository) URL() *url.URL {
	if r == nil {
		return nil
	}
	return r.remote.URL()
}

func (r *IvyRepository) RawURL() string {
	if r == nil {
		return ""
	}
	return r.remote.RawURL()
}

// Kind returns values.KindIvy.
func (r *IvyRepository) Kind() values.RepositoryKind {
	return values.KindIvy
}

// FlatDirRepository is a local directory repository without a URL.
type FlatDirRepository struct {
	name string
	dirs []string
}

// NewFlatDirRepository creates a flat directory repository declaration.
func NewFlatDirRepository(name string, dirs ...string) *FlatDirRepository {
	return &FlatDirRepository{name: name, dirs: dirs}
}

// Name returns the declaration name.
func (r *FlatDirRepository) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// Kind returns values.KindFlatDir.
func (r *FlatDirRepository) Kind() values.RepositoryKind {
	return values.KindFlatDir
}

// Dirs returns the configured directories.
func (r *FlatDirRepository) Dirs() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.dirs)
}

// remote holds the state shared by URL-addressed repositories.
// raw keeps the URL text as declared; url.Parse lowercases the scheme.
type remote struct {
	url            *url.URL
	credentials    *values.CredentialPair
	name           string
	raw            string
	authentication []values.AuthScheme
}

func newRemote(name string, u *url.URL) remote {
	r := remote{name: name}
	r.SetURL(u)
	return r
}

func parseRemote(name, rawURL string) (remote, error) {
	r := remote{name: name, raw: rawURL}
	if rawURL == "" {
		return r, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return remote{}, fmt.Errorf("repository %q: %w", name, err)
	}
	r.url = u
	return r, nil
}

func (r *remote) Name() string {
	return r.name
}

func (r *remote) URL() *url.URL {
	return r.url
}

func (r *remote) RawURL() string {
	return r.raw
}

func (r *remote) SetURL(u *url.URL) {
	r.url = u
	r.raw = ""
	if u != nil {
		r.raw = u.String()
	}
}

func (r *remote) Credentials() (values.CredentialPair, bool) {
	if r.credentials == nil {
		return values.CredentialPair{}, false
	}
	return *r.credentials, true
}

func (r *remote) SetCredentials(creds values.CredentialPair) {
	r.credentials = &creds
}

func (r *remote) Authentication() []values.AuthScheme {
	return slices.Clone(r.authentication)
}

// AddAuthentication adds a scheme unless it is already present.
func (r *remote) AddAuthentication(scheme values.AuthScheme) {
	if slices.Contains(r.authentication, scheme) {
		return
	}
	r.authentication = append(r.authentication, scheme)
}
