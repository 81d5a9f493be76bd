package workspace

import (
	"fmt"

	"github.com/reglet-dev/artifactregistry-auth/repository/entities"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

// File represents the YAML structure of a workspace file.
type File struct {
	PluginManagement *RepositoryBlock `yaml:"pluginManagement,omitempty" jsonschema:"description=Repositories used to resolve build plugins"`
	SchemaVersion    string           `yaml:"schemaVersion" jsonschema:"description=Workspace format version,example=1.0.0"`
	Include          []string         `yaml:"include,omitempty" jsonschema:"description=Glob patterns of project files relative to the workspace file"`
	Projects         []ProjectFile    `yaml:"projects,omitempty"`
}

// ProjectFile represents a project, inline or in an included document.
type ProjectFile struct {
	Publishing   *RepositoryBlock `yaml:"publishing,omitempty"`
	Name         string           `yaml:"name" jsonschema:"minLength=1"`
	Repositories []Repository     `yaml:"repositories,omitempty"`
}

// RepositoryBlock is a list of repositories under an extension key.
type RepositoryBlock struct {
	Repositories []Repository `yaml:"repositories"`
}

// Repository represents a repository declaration in YAML.
type Repository struct {
	Credentials    *Credentials `yaml:"credentials,omitempty"`
	Name           string       `yaml:"name" jsonschema:"minLength=1"`
	Type           string       `yaml:"type,omitempty" jsonschema:"enum=maven,enum=ivy,enum=flatDir,default=maven"`
	URL            string       `yaml:"url,omitempty"`
	Dirs           []string     `yaml:"dirs,omitempty"`
	Authentication []string     `yaml:"authentication,omitempty"`
}

// Credentials represents explicitly configured repository credentials.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ToDeclaration converts the YAML representation to a domain declaration.
func (r Repository) ToDeclaration() (ports.Declaration, error) {
	kindName := r.Type
	if kindName == "" {
		kindName = values.KindMaven.String()
	}
	kind, err := values.ParseRepositoryKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("repository %q: %w", r.Name, err)
	}

	if kind == values.KindFlatDir {
		if r.URL != "" || r.Credentials != nil {
			return nil, fmt.Errorf("repository %q: flatDir repositories take only dirs", r.Name)
		}
		return entities.NewFlatDirRepository(r.Name, r.Dirs...), nil
	}

	var repo ports.RemoteRepository
	if kind == values.KindIvy {
		repo, err = entities.ParseIvyRepository(r.Name, r.URL)
	} else {
		repo, err = entities.ParseMavenRepository(r.Name, r.URL)
	}
	if err != nil {
		return nil, err
	}

	if r.Credentials != nil {
		repo.SetCredentials(values.NewCredentialPair(r.Credentials.Username, r.Credentials.Password))
	}
	for _, name := range r.Authentication {
		scheme, err := values.ParseAuthScheme(name)
		if err != nil {
			return nil, fmt.Errorf("repository %q: %w", r.Name, err)
		}
		repo.AddAuthentication(scheme)
	}
	return repo, nil
}

// FromDeclaration converts a domain declaration to its YAML representation.
func FromDeclaration(decl ports.Declaration) Repository {
	out := Repository{
		Name: decl.Name(),
		Type: decl.Kind().String(),
	}

	switch d := decl.(type) {
	case *entities.FlatDirRepository:
		out.Dirs = d.Dirs()
	case ports.RemoteRepository:
		out.URL = d.RawURL()
		if creds, ok := d.Credentials(); ok {
			out.Credentials = &Credentials{Username: creds.Username(), Password: creds.Password()}
		}
		for _, scheme := range d.Authentication() {
			out.Authentication = append(out.Authentication, scheme.String())
		}
	}
	return out
}

func toDeclarations(repos []Repository) ([]ports.Declaration, error) {
	decls := make([]ports.Declaration, 0, len(repos))
	for _, r := range repos {
		decl, err := r.ToDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func fromDeclarations(decls []ports.Declaration) []Repository {
	out := make([]Repository, 0, len(decls))
	for _, d := range decls {
		out = append(out, FromDeclaration(d))
	}
	return out
}
