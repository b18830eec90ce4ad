package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/alexanderramin/milestones/internal/service"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"m"},
		Short:   "Manage milestones of the current project",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneRemoveCmd(app),
		newMilestoneToggleCmd(app),
		newMilestoneEditCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NOTE...",
		Short: "Append a milestone with the given note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, m, err := app.Store.AddMilestone(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added #%d %s: %s", idx+1, m.Name, m.Note)))
			return nil
		},
	}
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove N",
		Short: "Delete the milestone at position N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			p := app.Store.Current()
			if p == nil {
				return fmt.Errorf("no current project")
			}
			m, err := p.Milestone(idx)
			if err != nil {
				return err
			}

			ok, err := confirmAction(app, yes, fmt.Sprintf("Delete milestone %q?", m.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			removed, err := app.Store.DeleteMilestone(context.Background(), idx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted "+removed.Name))
			return nil
		},
	}

	addYesFlag(cmd.Flags(), &yes)
	return cmd
}

func newMilestoneToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle N",
		Short: "Flip completion of the milestone at position N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			res, err := app.Store.ToggleMilestone(context.Background(), idx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state := "not done"
			if res.Milestone.Completed {
				state = "done"
			}
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("%s marked %s (%.1f%%)", res.Milestone.Name, state, res.Progress)))
			if res.ProjectCompleted {
				fmt.Fprintln(out, celebrationText(app.Store.Current().Name))
			}
			return nil
		},
	}
}

func newMilestoneEditCmd(app *App) *cobra.Command {
	var name, note string

	cmd := &cobra.Command{
		Use:   "edit N",
		Short: "Rename a milestone or change its note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			var edit service.MilestoneEdit
			if cmd.Flags().Changed("name") {
				edit.Name = &name
			}
			if cmd.Flags().Changed("note") {
				edit.Note = &note
			}
			if edit.Name == nil && edit.Note == nil {
				return fmt.Errorf("nothing to change: pass --name and/or --note")
			}

			if err := app.Store.EditMilestone(context.Background(), idx, edit); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated milestone #%d", idx+1)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New milestone name")
	cmd.Flags().StringVar(&note, "note", "", "New milestone note (may be empty)")
	return cmd
}

// celebrationText is shown when the last open milestone is completed.
func celebrationText(project string) string {
	return formatter.StyleYellow.Render("🎉 Congratulations! ") + formatter.Bold(project) + formatter.StyleYellow.Render(" is 100% complete.")
}
