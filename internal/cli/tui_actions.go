package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/milestones/internal/report"
	"github.com/alexanderramin/milestones/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Store mutations started from the TUI. Each returns a mutationMsg so the
// appModel can refresh every view and show the outcome as a toast.

func toggleMilestoneCmd(app *App, index int) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Store.ToggleMilestone(context.Background(), index)
		if err != nil {
			return mutationMsg{err: err}
		}
		text := res.Milestone.Name + " reopened"
		if res.Milestone.Completed {
			text = res.Milestone.Name + " completed"
		}
		return mutationMsg{toast: text, completed: res.ProjectCompleted}
	}
}

func addMilestoneCmd(app *App, note string) tea.Cmd {
	return func() tea.Msg {
		_, m, err := app.Store.AddMilestone(context.Background(), note)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Added " + m.Name}
	}
}

func editMilestoneCmd(app *App, index int, name, note string) tea.Cmd {
	return func() tea.Msg {
		edit := service.MilestoneEdit{Name: &name, Note: &note}
		if err := app.Store.EditMilestone(context.Background(), index, edit); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Milestone updated"}
	}
}

func deleteMilestoneCmd(app *App, index int) tea.Cmd {
	return func() tea.Msg {
		m, err := app.Store.DeleteMilestone(context.Background(), index)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Deleted " + m.Name}
	}
}

func switchProjectCmd(app *App, id string) tea.Cmd {
	return func() tea.Msg {
		if err := app.Store.SwitchProject(context.Background(), id); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Switched to " + app.Store.Current().Name}
	}
}

func createProjectCmd(app *App, name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		id, p, err := app.Store.CreateProject(ctx, "", name)
		if err != nil {
			return mutationMsg{err: err}
		}
		if err := app.Store.SwitchProject(ctx, id); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Created " + p.Name}
	}
}

func renameProjectCmd(app *App, name string) tea.Cmd {
	return func() tea.Msg {
		if err := app.Store.RenameProject(context.Background(), name); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Project renamed"}
	}
}

func setLabelCmd(app *App, label string) tea.Cmd {
	return func() tea.Msg {
		if err := app.Store.SetLabel(context.Background(), label); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Label set to " + app.Store.Label()}
	}
}

func shareLinkCmd(app *App) tea.Cmd {
	return func() tea.Msg {
		link, err := app.Store.ShareLink(app.Config.ShareBaseURL)
		if err != nil {
			return toastMsg{text: UserMessage(err), kind: toastError}
		}
		return toastMsg{text: "Share link: " + link}
	}
}

func exportReportCmd(app *App) tea.Cmd {
	return func() tea.Msg {
		p := app.Store.Current()
		if p == nil {
			return toastMsg{text: "no current project", kind: toastError}
		}
		path, err := report.Write(app.Config.ReportDir, p, app.now())
		if err != nil {
			return toastMsg{text: err.Error(), kind: toastError}
		}
		return toastMsg{text: fmt.Sprintf("Report exported to %s", path)}
	}
}

func joinSharedCmd(app *App, token string) tea.Cmd {
	return func() tea.Msg {
		if _, err := app.Store.JoinSharedProject(context.Background(), token); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{toast: "Joined " + app.Store.Current().Name}
	}
}
