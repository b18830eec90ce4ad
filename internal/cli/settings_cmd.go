package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Project label and data management",
	}
	cmd.AddCommand(newSettingsLabelCmd(app), newSettingsClearCmd(app))
	return cmd
}

func newSettingsLabelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "label [NEW]",
		Short: "Show or set the caption shown before project names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), app.Store.Label())
				return nil
			}
			if err := app.Store.SetLabel(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Label set to "+app.Store.Label()))
			return nil
		},
	}
}

func newSettingsClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all projects and restore the default project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirmAction(app, yes, "Delete ALL data? This cannot be undone.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			if err := app.Store.ClearAll(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("All data cleared"))
			return nil
		},
	}

	addYesFlag(cmd.Flags(), &yes)
	return cmd
}
