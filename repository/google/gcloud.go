package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// CommandRunner executes a command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// DefaultGcloudCommand returns the gcloud executable name for the current platform.
func DefaultGcloudCommand() string {
	if runtime.GOOS == "windows" {
		return "gcloud.cmd"
	}
	return "gcloud"
}

// GcloudTokenSource obtains access tokens from the gcloud CLI's active account.
type GcloudTokenSource struct {
	// ctx bounds every gcloud run; oauth2.TokenSource.Token takes no context.
	ctx     context.Context
	run     CommandRunner
	command string
}

// NewGcloudTokenSource creates a token source that shells out to command.
// A nil runner executes the command with os/exec.
func NewGcloudTokenSource(ctx context.Context, command string, run CommandRunner) *GcloudTokenSource {
	if command == "" {
		command = DefaultGcloudCommand()
	}
	if run == nil {
		run = execCommand
	}
	return &GcloudTokenSource{
		ctx:     ctx,
		run:     run,
		command: command,
	}
}

// configHelperOutput is the subset of `gcloud config config-helper --format=json` we read.
type configHelperOutput struct {
	Credential struct {
		AccessToken string `json:"access_token"`
		TokenExpiry string `json:"token_expiry"`
	} `json:"credential"`
}

// Token implements oauth2.TokenSource.
func (s *GcloudTokenSource) Token() (*oauth2.Token, error) {
	out, err := s.run(s.ctx, s.command, "config", "config-helper", "--format=json")
	if err != nil {
		return nil, fmt.Errorf("run %s config config-helper: %w", s.command, err)
	}

	var helper configHelperOutput
	if err := json.Unmarshal(out, &helper); err != nil {
		return nil, fmt.Errorf("invalid gcloud config-helper output: %w", err)
	}
	if helper.Credential.AccessToken == "" {
		return nil, fmt.Errorf("gcloud returned no access token; run `%s auth login`", s.command)
	}

	tok := &oauth2.Token{
		AccessToken: helper.Credential.AccessToken,
		TokenType:   "Bearer",
	}
	if helper.Credential.TokenExpiry != "" {
		expiry, err := time.Parse(time.RFC3339, helper.Credential.TokenExpiry)
		if err != nil {
			return nil, fmt.Errorf("invalid gcloud token expiry %q: %w", helper.Credential.TokenExpiry, err)
		}
		tok.Expiry = expiry
	}
	return tok, nil
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
