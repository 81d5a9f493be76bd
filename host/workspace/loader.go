package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
)

// CurrentSchemaVersion is the format version written by Save.
const CurrentSchemaVersion = "1.0.0"

// SupportedSchemaVersions is the constraint a loaded schemaVersion must satisfy.
const SupportedSchemaVersions = "^1.0"

// ErrInvalidWorkspace is returned when a workspace file fails validation.
var ErrInvalidWorkspace = errors.New("invalid workspace")

// Load reads a workspace file and any project files it includes.
// Include patterns are resolved relative to the workspace file's directory
// and may not escape it.
func Load(path string) (*Workspace, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %q: %w", filepath.Dir(path), err)
	}
	defer func() { _ = root.Close() }()

	data, err := readFile(root, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	v, err := newWorkspaceValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding workspace YAML: %w", err)
	}
	if err := checkSchemaVersion(file.SchemaVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	included, err := loadIncludes(root, file.Include)
	if err != nil {
		return nil, err
	}
	file.Projects = append(file.Projects, included...)

	return FromFile(&file)
}

func readFile(root *os.Root, name string) ([]byte, error) {
	f, err := root.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	return data, nil
}

func checkSchemaVersion(raw string) error {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: schemaVersion %q: %v", ErrInvalidWorkspace, raw, err)
	}
	c, err := semver.NewConstraint(SupportedSchemaVersions)
	if err != nil {
		return fmt.Errorf("invalid constraint %q: %w", SupportedSchemaVersions, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: schemaVersion %s is not supported (want %s)", ErrInvalidWorkspace, v, SupportedSchemaVersions)
	}
	return nil
}

// loadIncludes expands the include patterns and decodes each match as a project.
// Matches are de-duplicated and read in lexical order.
func loadIncludes(root *os.Root, patterns []string) ([]ProjectFile, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var matches []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: bad include pattern %q", ErrInvalidWorkspace, pattern)
		}
		found, err := doublestar.Glob(root.FS(), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding include %q: %w", pattern, err)
		}
		matches = append(matches, found...)
	}
	slices.Sort(matches)
	matches = slices.Compact(matches)

	v, err := newProjectValidator()
	if err != nil {
		return nil, err
	}

	projects := make([]ProjectFile, 0, len(matches))
	for _, name := range matches {
		data, err := readFile(root, name)
		if err != nil {
			return nil, err
		}
		if err := v.Validate(data); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		var p ProjectFile
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decoding project %q: %w", name, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// FromFile builds a workspace from its YAML representation.
// Includes are not expanded.
func FromFile(file *File) (*Workspace, error) {
	w := New()
	if file.SchemaVersion != "" {
		w.schemaVersion = file.SchemaVersion
	}

	if file.PluginManagement != nil {
		decls, err := toDeclarations(file.PluginManagement.Repositories)
		if err != nil {
			return nil, fmt.Errorf("%w: pluginManagement: %v", ErrInvalidWorkspace, err)
		}
		w.settings.SetPluginManagementRepositories(decls)
	}

	for _, pf := range file.Projects {
		p, err := projectFromFile(pf)
		if err != nil {
			return nil, err
		}
		if err := w.AddProject(p); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func projectFromFile(pf ProjectFile) (*Project, error) {
	repos, err := toDeclarations(pf.Repositories)
	if err != nil {
		return nil, fmt.Errorf("%w: project %q: %v", ErrInvalidWorkspace, pf.Name, err)
	}

	var publishing []ports.Declaration
	if pf.Publishing != nil {
		publishing, err = toDeclarations(pf.Publishing.Repositories)
		if err != nil {
			return nil, fmt.Errorf("%w: project %q publishing: %v", ErrInvalidWorkspace, pf.Name, err)
		}
	}
	return NewProject(pf.Name, repos, publishing), nil
}

// ToFile converts the workspace to its YAML representation.
// Included projects are written inline.
func (w *Workspace) ToFile() *File {
	out := &File{SchemaVersion: w.schemaVersion}

	if repos, ok := w.settings.PluginManagementRepositories(); ok {
		out.PluginManagement = &RepositoryBlock{Repositories: fromDeclarations(repos)}
	}

	for _, p := range w.projects {
		pf := ProjectFile{Name: p.name}
		if len(p.repositories) > 0 {
			pf.Repositories = fromDeclarations(p.repositories)
		}
		if p.publishing != nil {
			pf.Publishing = &RepositoryBlock{Repositories: fromDeclarations(p.publishing)}
		}
		out.Projects = append(out.Projects, pf)
	}
	return out
}

// Save writes the workspace to path. The file may hold access tokens and is
// created readable by the owner only.
func (w *Workspace) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("opening directory for write %q: %w", dir, err)
	}
	defer func() { _ = root.Close() }()

	base := filepath.Base(path)
	file, err := root.OpenFile(base, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating workspace file %q: %w", base, err)
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	if err := encoder.Encode(w.ToFile()); err != nil {
		return fmt.Errorf("encoding workspace: %w", err)
	}
	return encoder.Close()
}
