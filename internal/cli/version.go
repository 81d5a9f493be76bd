package cli

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// BuildVersion overrides the module version reported by `arauth version`.
// Set with -ldflags "-X github.com/reglet-dev/artifactregistry-auth/internal/cli.BuildVersion=v1.2.3".
var BuildVersion = "n/a"

func newVersionCommand() *cobra.Command {
	format := newEnum("short", "short", "gobuildinfo")
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the arauth version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				return errors.New("no build info available")
			}
			if BuildVersion != "n/a" {
				info.Main.Version = BuildVersion
			}

			if format.String() == "gobuildinfo" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), info.String())
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "arauth %s (%s)\n", info.Main.Version, info.GoVersion)
			return err
		},
	}
	enumVar(cmd.Flags(), format, "format", "output format")
	return cmd
}
