package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/alexanderramin/milestones/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardLoadedMsg carries a fresh snapshot of the current project.
type dashboardLoadedMsg struct {
	projectID string
	project   *domain.Project
	label     string
}

// dashboardView is the home screen: the current project's progress and
// its milestone list with a cursor.
type dashboardView struct {
	state     *SharedState
	projectID string
	project   *domain.Project
	label     string
	cursor    int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "share")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "report")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	store := v.state.App.Store
	return func() tea.Msg {
		return dashboardLoadedMsg{
			projectID: store.CurrentID(),
			project:   store.Current(),
			label:     store.Label(),
		}
	}
}

func (v *dashboardView) milestoneCount() int {
	if v.project == nil {
		return 0
	}
	return len(v.project.Milestones)
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.projectID != v.projectID {
			v.cursor = 0
		}
		v.projectID = msg.projectID
		v.project = msg.project
		v.label = msg.label
		if n := v.milestoneCount(); v.cursor >= n {
			v.cursor = max(0, n-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) tea.Cmd {
	app := v.state.App
	n := v.milestoneCount()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < n-1 {
			v.cursor++
		}
	case " ":
		if n > 0 {
			return toggleMilestoneCmd(app, v.cursor)
		}
	case "a":
		var note string
		return startWizard(v.state, "Add milestone",
			wizardInputText("Milestone note", "e.g. buy paper", true, &note),
			func() tea.Cmd { return addMilestoneCmd(app, note) })
	case "e":
		if n == 0 {
			return nil
		}
		idx := v.cursor
		m := v.project.Milestones[idx]
		name, note := m.Name, m.Note
		return startWizard(v.state, "Edit milestone", wizardEditMilestone(&name, &note),
			func() tea.Cmd { return editMilestoneCmd(app, idx, name, note) })
	case "x":
		if n == 0 {
			return nil
		}
		idx := v.cursor
		var ok bool
		title := fmt.Sprintf("Delete milestone %q?", v.project.Milestones[idx].Name)
		return startWizard(v.state, "Delete", wizardConfirm(title, &ok), func() tea.Cmd {
			if !ok {
				return showToast("Cancelled.")
			}
			return deleteMilestoneCmd(app, idx)
		})
	case "p":
		return pushView(newProjectListView(v.state))
	case "s":
		return pushView(newStatsView(v.state))
	case "l":
		return shareLinkCmd(app)
	case "r":
		return exportReportCmd(app)
	}
	return nil
}

func (v *dashboardView) View() string {
	if v.project == nil {
		return "\n  " + formatter.Dim("Loading...")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range strings.Split(formatter.FormatProjectSummary(v.project, v.label), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	rows := strings.Split(formatter.FormatMilestoneList(v.project.Milestones, v.cursor), "\n")
	for _, line := range v.visibleRows(rows) {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// visibleRows keeps the cursor on screen when the list is taller than the
// space left under the summary.
func (v *dashboardView) visibleRows(rows []string) []string {
	limit := v.state.ContentHeight() - 4
	if v.state.Height == 0 || limit < 1 || len(rows) <= limit {
		return rows
	}
	start := min(max(v.cursor-limit/2, 0), len(rows)-limit)
	return rows[start : start+limit]
}
