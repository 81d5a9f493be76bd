package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// SettingsAnswers are the values needed to print a repository snippet.
type SettingsAnswers struct {
	Location   string
	Project    string
	Repository string
}

// Missing returns the names of the unset fields.
func (a *SettingsAnswers) Missing() []string {
	var missing []string
	if a.Location == "" {
		missing = append(missing, "location")
	}
	if a.Project == "" {
		missing = append(missing, "project")
	}
	if a.Repository == "" {
		missing = append(missing, "repository")
	}
	return missing
}

// Prompter asks the user for missing values.
type Prompter interface {
	IsInteractive() bool
	PromptForSettings(answers *SettingsAnswers) error
}

// TerminalPrompter prompts on the controlling terminal.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// PromptForSettings asks for every unset field of answers.
func (p *TerminalPrompter) PromptForSettings(answers *SettingsAnswers) error {
	var fields []huh.Field
	if answers.Location == "" {
		fields = append(fields, huh.NewInput().
			Title("Location").
			Description("Artifact Registry region, for example us or europe-west1").
			Value(&answers.Location).
			Validate(required))
	}
	if answers.Project == "" {
		fields = append(fields, huh.NewInput().
			Title("Google Cloud project").
			Value(&answers.Project).
			Validate(required))
	}
	if answers.Repository == "" {
		fields = append(fields, huh.NewInput().
			Title("Repository").
			Value(&answers.Repository).
			Validate(required))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}
