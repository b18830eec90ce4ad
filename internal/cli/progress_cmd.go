package cli

import (
	"fmt"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show progress and statistics of the current project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Store.Current()
			if p == nil {
				return fmt.Errorf("no current project")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProjectSummary(p, app.Store.Label()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatStats(app.Store.Stats()))
			return nil
		},
	}
}
