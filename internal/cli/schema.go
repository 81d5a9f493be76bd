package cli

import (
	"github.com/spf13/cobra"

	"github.com/reglet-dev/artifactregistry-auth/host/workspace"
)

func newSchemaCommand() *cobra.Command {
	var project bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the workspace file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema := workspace.Schema
			if project {
				schema = workspace.ProjectSchema
			}
			b, err := schema()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(b, '\n'))
			return err
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "print the schema of an included project file instead")
	return cmd
}
