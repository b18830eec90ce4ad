package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/alexanderramin/milestones/internal/domain"
	"github.com/alexanderramin/milestones/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// projectsLoadedMsg signals that project list data has been loaded.
type projectsLoadedMsg struct {
	entries   []service.ProjectEntry
	currentID string
}

// projectListView shows an interactive, navigable list of projects.
type projectListView struct {
	state     *SharedState
	entries   []service.ProjectEntry
	currentID string
	cursor    int
	loaded    bool
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{state: state}
}

func (v *projectListView) ID() ViewID    { return ViewProjectList }
func (v *projectListView) Title() string { return "Projects" }

func (v *projectListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "switch")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "label")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "join shared")),
	}
}

func (v *projectListView) Init() tea.Cmd {
	return v.loadProjects()
}

func (v *projectListView) loadProjects() tea.Cmd {
	store := v.state.App.Store
	return func() tea.Msg {
		return projectsLoadedMsg{entries: store.Projects(), currentID: store.CurrentID()}
	}
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		first := !v.loaded
		v.loaded = true
		v.entries = msg.entries
		v.currentID = msg.currentID
		if first {
			for i, e := range v.entries {
				if e.ID == v.currentID {
					v.cursor = i
				}
			}
		}
		if v.cursor >= len(v.entries) {
			v.cursor = max(0, len(v.entries)-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadProjects()

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *projectListView) handleKey(msg tea.KeyMsg) tea.Cmd {
	app := v.state.App

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.entries)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.entries) {
			return tea.Batch(switchProjectCmd(app, v.entries[v.cursor].ID), popView())
		}
	case "n":
		var name string
		return startWizard(v.state, "New project",
			wizardInputText("Project name", domain.DefaultProjectName, true, &name),
			func() tea.Cmd { return createProjectCmd(app, strings.TrimSpace(name)) })
	case "r":
		name := ""
		if p := app.Store.Current(); p != nil {
			name = p.Name
		}
		return startWizard(v.state, "Rename project",
			wizardInputText("Project name", "", true, &name),
			func() tea.Cmd { return renameProjectCmd(app, strings.TrimSpace(name)) })
	case "t":
		label := app.Store.Label()
		return startWizard(v.state, "Project label",
			wizardInputText("Label", domain.DefaultLabel, false, &label),
			func() tea.Cmd { return setLabelCmd(app, label) })
	case "s":
		var token string
		return startWizard(v.state, "Join shared project",
			wizardInputText("Share link or token", "https://…?share=abcd1234", true, &token),
			func() tea.Cmd { return joinSharedCmd(app, token) })
	}
	return nil
}

func (v *projectListView) View() string {
	if !v.loaded {
		return "\n  " + formatter.Dim("Loading projects...")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, e := range v.entries {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		current := " "
		if e.ID == v.currentID {
			current = formatter.StyleGreen.Render("●")
		}
		stats := e.Project.Stats()

		b.WriteString(fmt.Sprintf("%s%s %-8s %s %s %s  %s\n",
			cursor,
			current,
			formatter.StyleGreen.Render(domain.DisplayID(e.ID)),
			nameStyle.Render(padRight(e.Project.Name, 22)),
			formatter.RenderCompactBar(stats.Rate, 10, false),
			formatter.Dim(fmt.Sprintf("%d/%d", stats.Completed, stats.Total)),
			formatter.Dim(formatter.RelativeTime(e.Project.UpdatedAt, v.state.Now)),
		))
	}
	return b.String()
}

// padRight pads a string to a display width, truncating if needed.
func padRight(s string, width int) string {
	s = formatter.Truncate(s, width)
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
