package cli

import (
	"fmt"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/alexanderramin/milestones/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var dir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a plain-text progress report",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Store.Current()
			if p == nil {
				return fmt.Errorf("no current project")
			}
			now := app.now()
			if stdout {
				fmt.Fprint(cmd.OutOrStdout(), report.Render(p, now))
				return nil
			}
			if dir == "" {
				dir = app.Config.ReportDir
			}
			path, err := report.Write(dir, p, now)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Report exported to "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default: MILESTONES_REPORT_DIR)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the report instead of writing a file")
	return cmd
}
