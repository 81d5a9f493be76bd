package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/artifactregistry-auth/host/workspace"
	"github.com/reglet-dev/artifactregistry-auth/internal/cli"
	"github.com/reglet-dev/artifactregistry-auth/repository"
	"github.com/reglet-dev/artifactregistry-auth/repository/entities"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
)

const testWorkspace = `schemaVersion: 1.0.0
pluginManagement:
  repositories:
    - name: plugins
      url: artifactregistry://europe-maven.pkg.dev/acme/plugins
projects:
  - name: app
    repositories:
      - name: central
        url: https://repo.maven.apache.org/maven2
      - name: internal
        url: artifactregistry://us-maven.pkg.dev/acme/internal
`

type fakePrompter struct {
	interactive bool
	fill        cli.SettingsAnswers
	prompted    int
}

func (p *fakePrompter) IsInteractive() bool { return p.interactive }

func (p *fakePrompter) PromptForSettings(a *cli.SettingsAnswers) error {
	p.prompted++
	if a.Location == "" {
		a.Location = p.fill.Location
	}
	if a.Project == "" {
		a.Project = p.fill.Project
	}
	if a.Repository == "" {
		a.Repository = p.fill.Repository
	}
	return nil
}

func run(t *testing.T, args []string, opts ...cli.Option) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(opts...)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testWorkspace), 0o600))
	return path
}

func TestApply(t *testing.T) {
	path := writeWorkspace(t)
	out := filepath.Join(filepath.Dir(path), "out.yaml")

	stdout, _, err := run(t,
		[]string{"apply", "-f", path, "-o", out, "--loglevel", "debug"},
		cli.WithCredentialProvider(repository.NewMockProvider("abc123")),
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "url: https://europe-maven.pkg.dev/acme/plugins")
	assert.Contains(t, stdout, "url: https://us-maven.pkg.dev/acme/internal")
	assert.Contains(t, stdout, "url: https://repo.maven.apache.org/maven2")
	assert.Contains(t, stdout, "<redacted>")
	assert.NotContains(t, stdout, "abc123")

	ws, err := workspace.Load(out)
	require.NoError(t, err)
	app, ok := ws.Project("app")
	require.True(t, ok)
	internal := app.Repositories()[1].(ports.RemoteRepository)
	creds, ok := internal.Credentials()
	require.True(t, ok)
	assert.Equal(t, "abc123", creds.Password())
}

func TestApply_ProjectTarget(t *testing.T) {
	path := writeWorkspace(t)

	stdout, _, err := run(t,
		[]string{"apply", "-f", path, "--target", "project"},
		cli.WithCredentialProvider(repository.NewMockProvider("abc123")),
	)
	require.NoError(t, err)

	// Plugin management belongs to settings and is untouched.
	assert.Contains(t, stdout, "url: artifactregistry://europe-maven.pkg.dev/acme/plugins")
	assert.Contains(t, stdout, "url: https://us-maven.pkg.dev/acme/internal")
}

func TestApply_Errors(t *testing.T) {
	t.Run("CredentialFailure", func(t *testing.T) {
		path := writeWorkspace(t)
		_, _, err := run(t,
			[]string{"apply", "-f", path},
			cli.WithCredentialProvider(&repository.MockProvider{Err: errors.New("no credentials")}),
		)
		assert.ErrorIs(t, err, entities.ErrCredentialAcquisition)
	})

	t.Run("MissingFileFlag", func(t *testing.T) {
		_, _, err := run(t, []string{"apply"}, cli.WithCredentialProvider(repository.NewMockProvider("abc123")))
		assert.Error(t, err)
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		path := writeWorkspace(t)
		_, _, err := run(t,
			[]string{"apply", "-f", path, "--target", "everything"},
			cli.WithCredentialProvider(repository.NewMockProvider("abc123")),
		)
		assert.Error(t, err)
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		path := writeWorkspace(t)
		_, _, err := run(t,
			[]string{"apply", "-f", path, "--loglevel", "verbose"},
			cli.WithCredentialProvider(repository.NewMockProvider("abc123")),
		)
		assert.Error(t, err)
	})
}

func TestPrintSettings(t *testing.T) {
	t.Run("FromFlags", func(t *testing.T) {
		prompter := &fakePrompter{}
		stdout, _, err := run(t,
			[]string{"print-settings", "--location", "US", "--project", "acme", "--repository", "libs"},
			cli.WithPrompter(prompter),
		)
		require.NoError(t, err)
		assert.Equal(t, `repositories:
  - name: artifact-registry
    type: maven
    url: artifactregistry://us-maven.pkg.dev/acme/libs
`, stdout)
		assert.Zero(t, prompter.prompted)
	})

	t.Run("PromptsWhenInteractive", func(t *testing.T) {
		prompter := &fakePrompter{
			interactive: true,
			fill:        cli.SettingsAnswers{Location: "europe", Project: "ignored", Repository: "libs"},
		}
		stdout, _, err := run(t,
			[]string{"print-settings", "--project", "acme", "--name", "ar"},
			cli.WithPrompter(prompter),
		)
		require.NoError(t, err)
		assert.Equal(t, 1, prompter.prompted)
		assert.Contains(t, stdout, "name: ar")
		assert.Contains(t, stdout, "url: artifactregistry://europe-maven.pkg.dev/acme/libs")
	})

	t.Run("FailsWhenNotInteractive", func(t *testing.T) {
		_, _, err := run(t,
			[]string{"print-settings", "--project", "acme"},
			cli.WithPrompter(&fakePrompter{}),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "location, repository")
	})
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := run(t, []string{"schema"})
	require.NoError(t, err)
	assert.Contains(t, stdout, `"schemaVersion"`)

	stdout, _, err = run(t, []string{"schema", "--project"})
	require.NoError(t, err)
	assert.Contains(t, stdout, `"publishing"`)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, []string{"version"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "arauth ")
}
