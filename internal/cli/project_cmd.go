package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectNewCmd(app),
		newProjectSwitchCmd(app),
		newProjectListCmd(app),
		newProjectRenameCmd(app),
		newProjectShowCmd(app),
	)

	return cmd
}

func newProjectNewCmd(app *App) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a project from the preset template and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			newID, p, err := app.Store.CreateProject(ctx, id, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SwitchProject(ctx, newID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created project %s [%s] with %d milestones",
				p.Name, newID, len(p.Milestones))))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Project ID (default: random UUID)")
	return cmd
}

func newProjectSwitchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "switch ID",
		Short: "Make another project current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.SwitchProject(context.Background(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Switched to "+app.Store.Current().Name))
			return nil
		},
	}
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projectRows(app), app.now()))
			return nil
		},
	}
}

func newProjectRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename NAME",
		Short: "Rename the current project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.RenameProject(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Renamed project to "+args[0]))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current project and its milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Store.Current()
			if p == nil {
				return fmt.Errorf("no current project")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectDetail(p, app.Store.Label()))
			return nil
		},
	}
}

// projectRows adapts the store listing for the formatter.
func projectRows(app *App) []formatter.ProjectRow {
	current := app.Store.CurrentID()
	entries := app.Store.Projects()
	rows := make([]formatter.ProjectRow, len(entries))
	for i, e := range entries {
		rows[i] = formatter.ProjectRow{ID: e.ID, Project: e.Project, Current: e.ID == current}
	}
	return rows
}
