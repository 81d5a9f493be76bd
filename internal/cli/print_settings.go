package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/artifactregistry-auth/host/workspace"
	"github.com/reglet-dev/artifactregistry-auth/netutil"
	"github.com/reglet-dev/artifactregistry-auth/repository/values"
)

func newPrintSettingsCommand(a *app) *cobra.Command {
	var (
		answers SettingsAnswers
		name    string
	)
	cmd := &cobra.Command{
		Use:   "print-settings",
		Short: "Print a workspace repository entry for an Artifact Registry repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if missing := answers.Missing(); len(missing) > 0 {
				if !a.prompter.IsInteractive() {
					return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
				}
				if err := a.prompter.PromptForSettings(&answers); err != nil {
					return err
				}
				if missing := answers.Missing(); len(missing) > 0 {
					return fmt.Errorf("missing required values: %s", strings.Join(missing, ", "))
				}
			}

			snippet := workspace.RepositoryBlock{Repositories: []workspace.Repository{{
				Name: name,
				Type: values.KindMaven.String(),
				URL:  netutil.MavenRegistryURL(answers.Location, answers.Project, answers.Repository),
			}}}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(snippet); err != nil {
				return fmt.Errorf("encoding snippet: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&answers.Location, "location", "", "Artifact Registry location, for example us")
	cmd.Flags().StringVar(&answers.Project, "project", "", "Google Cloud project ID")
	cmd.Flags().StringVar(&answers.Repository, "repository", "", "Artifact Registry repository ID")
	cmd.Flags().StringVar(&name, "name", "artifact-registry", "name of the repository entry")
	return cmd
}
