package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/milestones/internal/config"
	"github.com/alexanderramin/milestones/internal/domain"
	"github.com/alexanderramin/milestones/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the store and settings used by CLI commands and the TUI.
type App struct {
	Store  service.ProjectStore
	Config config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil falls back to a huh confirm form.
	Confirm func(title string) (bool, error)
	// Now overrides the wall clock for report names and relative times.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "milestones" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "milestones",
		Short:         "Track project milestones and progress",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newMilestoneCmd(app),
		newProgressCmd(app),
		newShareCmd(app),
		newReportCmd(app),
		newSettingsCmd(app),
		newTUICmd(app),
	)

	return root
}

// UserMessage maps known errors to short messages for the terminal.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyNote):
		return "please enter a milestone note"
	case errors.Is(err, domain.ErrEmptyName):
		return "the name cannot be empty"
	case errors.Is(err, domain.ErrMilestoneNotFound):
		return "no milestone at that position"
	case errors.Is(err, domain.ErrShareNotFound):
		return "no project matches that share link"
	case errors.Is(err, domain.ErrProjectNotFound):
		return "project not found"
	case errors.Is(err, service.ErrStoreNotOpen):
		return "storage is not available"
	}
	return err.Error()
}

// confirmAction resolves a destructive action's confirmation. --yes skips the
// prompt; non-interactive sessions must pass it.
func confirmAction(app *App, yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, fmt.Errorf("refusing to continue without --yes in a non-interactive session")
	}
	if app.Confirm != nil {
		return app.Confirm(title)
	}
	var ok bool
	if err := wizardConfirm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// addYesFlag registers the --yes/-y flag that skips confirmation prompts.
func addYesFlag(fs *pflag.FlagSet, yes *bool) {
	fs.BoolVarP(yes, "yes", "y", false, "Skip the confirmation prompt")
}

// parsePosition converts a 1-based CLI position to a store index.
func parsePosition(arg string) (int, error) {
	n, err := parsePositiveIntStrict(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid milestone number %q: %w", arg, err)
	}
	return n - 1, nil
}
