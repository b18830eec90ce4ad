package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/milestones/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toast struct {
	id   int
	text string
	kind toastKind
}

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, the header clock, toasts and the celebration overlay.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	toasts      []toast
	nextToastID int

	celebrating    bool
	celebrateTitle string
	celebrationID  int
}

func newAppModel(app *App) appModel {
	state := &SharedState{
		App: app,
		Now: app.now(),
	}

	m := appModel{state: state}

	// Start with the dashboard as the home view.
	m.viewStack = []View{newDashboardView(state)}

	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		// Broadcast to all views so underlying views reload after mutations
		// made in views above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case mutationMsg:
		cmds := []tea.Cmd{func() tea.Msg { return refreshViewMsg{} }}
		switch {
		case msg.err != nil:
			cmds = append(cmds, showError(msg.err))
		case msg.toast != "":
			cmds = append(cmds, showToast(msg.toast))
		}
		if msg.completed {
			cmds = append(cmds, tea.Tick(celebrateDelay, func(time.Time) tea.Msg { return celebrateMsg{} }))
		}
		return m, tea.Batch(cmds...)

	case clockTickMsg:
		m.state.Now = time.Time(msg)
		return m, clockTick()

	case toastMsg:
		m.nextToastID++
		id := m.nextToastID
		m.toasts = append(m.toasts, toast{id: id, text: msg.text, kind: msg.kind})
		return m, tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })

	case toastExpiredMsg:
		kept := m.toasts[:0:0]
		for _, t := range m.toasts {
			if t.id != msg.id {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		return m, nil

	case celebrateMsg:
		m.celebrating = true
		if p := m.state.App.Store.Current(); p != nil {
			m.celebrateTitle = p.Name
		}
		m.celebrationID++
		id := m.celebrationID
		return m, tea.Tick(celebrationTTL, func(time.Time) tea.Msg { return celebrateDoneMsg{id: id} })

	case celebrateDoneMsg:
		if msg.id == m.celebrationID {
			m.celebrating = false
		}
		return m, nil

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m.forward(msg)
}

// forward passes msg to the active view.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms receive every key, including q and esc.
	if v := m.activeView(); v != nil && v.ID() == ViewForm {
		return m.forward(msg)
	}

	// Any key dismisses the celebration early.
	m.celebrating = false

	switch {
	case msg.String() == "q":
		return m, m.requestQuit()

	case msg.Type == tea.KeyEsc:
		// Pop view stack (go back)
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	return m.forward(msg)
}

// requestQuit quits at once when every milestone is done and asks first otherwise.
func (m appModel) requestQuit() tea.Cmd {
	pending := m.state.App.Store.Stats().Pending
	if pending == 0 {
		return quitCmd
	}
	var ok bool
	title := fmt.Sprintf("%d milestones are unfinished. Quit anyway?", pending)
	return startWizard(m.state, "Quit", wizardConfirm(title, &ok), func() tea.Cmd {
		if ok {
			return quitCmd
		}
		return nil
	})
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.celebrating {
		sections = append(sections, m.renderCelebration())
	}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	if len(m.toasts) > 0 {
		sections = append(sections, m.renderToasts())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("milestones")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	if !m.state.Now.IsZero() {
		clock := formatter.Dim(m.state.Now.Local().Format(formatter.TimestampLayout))
		gap := max(m.state.Width-lipgloss.Width(header)-lipgloss.Width(clock), 2)
		header += strings.Repeat(" ", gap) + clock
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderToasts() string {
	lines := make([]string, len(m.toasts))
	for i, t := range m.toasts {
		if t.kind == toastError {
			lines[i] = "  " + formatter.StyleRed.Render("✖ "+t.text)
			continue
		}
		lines[i] = "  " + formatter.Success(t.text)
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) renderCelebration() string {
	return formatter.RenderBox("", celebrationText(m.celebrateTitle))
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
