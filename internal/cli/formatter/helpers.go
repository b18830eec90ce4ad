package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// TimestampLayout is used wherever an absolute local time is shown.
const TimestampLayout = "2006/01/02 15:04:05"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeTime describes t relative to now, e.g. "3 minutes ago".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Timestamp formats t in local time.
func Timestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Truncate shortens s to at most width display cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-1 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}
