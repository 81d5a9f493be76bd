// Package cli implements the arauth command line.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/artifactregistry-auth/repository/google"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
)

// Option configures the root command.
type Option func(*app)

// WithCredentialProvider replaces the Google credential provider.
func WithCredentialProvider(p ports.CredentialProvider) Option {
	return func(a *app) { a.provider = p }
}

// WithPrompter replaces the terminal prompter.
func WithPrompter(p Prompter) Option {
	return func(a *app) { a.prompter = p }
}

// app holds state shared by the subcommands.
type app struct {
	provider ports.CredentialProvider
	prompter Prompter
	logger   *slog.Logger
}

func (a *app) credentialProvider(gcloudCommand string) ports.CredentialProvider {
	if a.provider != nil {
		return a.provider
	}
	return google.NewDefaultCredentialProvider(
		google.WithGcloudCommand(gcloudCommand),
		google.WithLogger(a.logger),
	)
}

// NewRootCommand creates the arauth command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		prompter: NewTerminalPrompter(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	logs := newLogFlags()
	cmd := &cobra.Command{
		Use:   "arauth",
		Short: "Authenticate Maven repositories hosted on Google Artifact Registry",
		Long: `arauth rewrites artifactregistry:// repository URLs in a workspace to https://
and attaches a Google OAuth2 access token as basic credentials.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logs.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	enumVar(cmd.PersistentFlags(), logs.level, "loglevel", "set the log level")
	enumVar(cmd.PersistentFlags(), logs.format, "logformat", "set the log format")

	cmd.AddCommand(
		newApplyCommand(a),
		newPrintSettingsCommand(a),
		newSchemaCommand(),
		newVersionCommand(),
	)
	return cmd
}
