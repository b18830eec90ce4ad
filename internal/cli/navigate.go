package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to reload from the store.
type refreshViewMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// quitMsg signals the app to quit.
type quitMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func quitCmd() tea.Msg { return quitMsg{} }

// ── timed messages ───────────────────────────────────────────────────────────

const (
	clockInterval  = time.Second
	toastTTL       = 3 * time.Second
	celebrateDelay = 500 * time.Millisecond
	celebrationTTL = 3 * time.Second
)

// clockTickMsg drives the header clock.
type clockTickMsg time.Time

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

type toastKind int

const (
	toastInfo toastKind = iota
	toastError
)

// toastMsg shows a transient notification.
type toastMsg struct {
	text string
	kind toastKind
}

// toastExpiredMsg removes the toast with the given id.
type toastExpiredMsg struct{ id int }

func showToast(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text} }
}

func showError(err error) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: UserMessage(err), kind: toastError} }
}

// mutationMsg reports the outcome of a store mutation started from a view.
type mutationMsg struct {
	toast string
	err   error
	// completed is set when the mutation brought the project to 100%.
	completed bool
}

// celebrateMsg shows the celebration overlay. celebrateDoneMsg hides it
// unless a newer celebration has started since.
type celebrateMsg struct{}
type celebrateDoneMsg struct{ id int }
