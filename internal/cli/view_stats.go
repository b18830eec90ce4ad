package cli

import (
	"strings"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	"github.com/alexanderramin/milestones/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type statsLoadedMsg struct {
	project *domain.Project
	label   string
}

// statsView shows completion totals and a completed/pending chart.
type statsView struct {
	state   *SharedState
	project *domain.Project
	label   string
}

func newStatsView(state *SharedState) *statsView {
	return &statsView{state: state}
}

func (v *statsView) ID() ViewID               { return ViewStats }
func (v *statsView) Title() string            { return "Statistics" }
func (v *statsView) ShortHelp() []key.Binding { return nil }

func (v *statsView) Init() tea.Cmd {
	store := v.state.App.Store
	return func() tea.Msg {
		return statsLoadedMsg{project: store.Current(), label: store.Label()}
	}
}

func (v *statsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		v.project = msg.project
		v.label = msg.label
	case refreshViewMsg:
		return v, v.Init()
	}
	return v, nil
}

func (v *statsView) View() string {
	if v.project == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, line := range strings.Split(formatter.FormatProjectSummary(v.project, v.label), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(formatter.FormatStats(v.project.Stats()))
	b.WriteString("\n")
	return b.String()
}
