package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newShareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share links for locating a project by its token",
	}
	cmd.AddCommand(newShareLinkCmd(app), newShareJoinCmd(app))
	return cmd
}

func newShareLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Print the share link of the current project",
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := app.Store.ShareLink(app.Config.ShareBaseURL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
}

func newShareJoinCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "join TOKEN|URL",
		Short: "Switch to the project carrying a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Store.JoinSharedProject(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Joined shared project "+app.Store.Current().Name))
			return nil
		},
	}
}
