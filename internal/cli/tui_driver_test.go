package cli

import (
	"testing"

	"github.com/alexanderramin/milestones/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals
// (view stack, toasts, celebration) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app, sets the terminal size and
// drains Init, which loads the dashboard from the in-memory store.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Dashboard returns the bottom dashboard view.
func (d *TestDriver) Dashboard() *dashboardView {
	return d.appModel().viewStack[0].(*dashboardView)
}

// Toasts returns the texts of the visible toasts, oldest first.
func (d *TestDriver) Toasts() []string {
	m := d.appModel()
	out := make([]string, len(m.toasts))
	for i, t := range m.toasts {
		out[i] = t.text
	}
	return out
}

// Celebrating reports whether the celebration overlay is shown.
func (d *TestDriver) Celebrating() bool {
	return d.appModel().celebrating
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
