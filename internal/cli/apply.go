package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/artifactregistry-auth/host"
	"github.com/reglet-dev/artifactregistry-auth/host/workspace"
	"github.com/reglet-dev/artifactregistry-auth/netutil"
	"github.com/reglet-dev/artifactregistry-auth/repository/google"
	"github.com/reglet-dev/artifactregistry-auth/repository/ports"
)

type applyOptions struct {
	target        *enumValue
	file          string
	output        string
	gcloudCommand string
}

// repositorySummary is one line of the apply report. Passwords are never printed.
type repositorySummary struct {
	Scope          string   `yaml:"scope"`
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	URL            string   `yaml:"url,omitempty"`
	Credentials    string   `yaml:"credentials,omitempty"`
	Authentication []string `yaml:"authentication,omitempty"`
}

func newApplyCommand(a *app) *cobra.Command {
	opts := &applyOptions{target: newEnum("settings", "settings", "build", "project")}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite Artifact Registry repositories in a workspace and attach credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "workspace file to read")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the rewritten workspace to this file")
	cmd.Flags().StringVar(&opts.gcloudCommand, "gcloud-command", google.DefaultGcloudCommand(), "gcloud executable used when Application Default Credentials are unavailable")
	enumVar(cmd.Flags(), opts.target, "target", "lifecycle scope the plugin is applied to")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runApply(cmd *cobra.Command, a *app, opts *applyOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ws, err := workspace.Load(opts.file)
	if err != nil {
		return err
	}

	plugin := host.NewPlugin(a.credentialProvider(opts.gcloudCommand), host.WithLogger(a.logger))
	switch opts.target.String() {
	case "settings":
		err = plugin.Apply(ctx, ws.Settings())
	case "build":
		err = plugin.Apply(ctx, ws)
	case "project":
		for _, p := range ws.Projects() {
			if err = plugin.Apply(ctx, p); err != nil {
				break
			}
		}
	}
	if err != nil {
		return err
	}

	if err := ws.Evaluate(ctx); err != nil {
		return err
	}

	for _, sd := range ws.Declarations() {
		remote, ok := sd.Declaration.(ports.RemoteRepository)
		if ok && netutil.IsArtifactRegistry(remote.RawURL()) {
			a.logger.Warn("artifactregistry URL left unchanged",
				"scope", sd.Scope,
				"repository", sd.Declaration.Name(),
				"type", sd.Declaration.Kind().String())
		}
	}

	if opts.output != "" {
		if err := ws.Save(opts.output); err != nil {
			return err
		}
		a.logger.Info("workspace written", "path", opts.output)
	}

	report := struct {
		Repositories []repositorySummary `yaml:"repositories"`
	}{Repositories: summarize(ws.Declarations())}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}

func summarize(decls []workspace.ScopedDeclaration) []repositorySummary {
	out := make([]repositorySummary, 0, len(decls))
	for _, sd := range decls {
		remote, ok := sd.Declaration.(ports.RemoteRepository)
		if !ok {
			continue
		}

		s := repositorySummary{
			Scope: sd.Scope,
			Name:  sd.Declaration.Name(),
			Type:  sd.Declaration.Kind().String(),
		}
		if u := remote.URL(); u != nil {
			s.URL = netutil.StripCredentials(u.String())
		}
		if creds, ok := remote.Credentials(); ok {
			s.Credentials = creds.String()
		}
		for _, scheme := range remote.Authentication() {
			s.Authentication = append(s.Authentication, scheme.String())
		}
		out = append(out, s)
	}
	return out
}
