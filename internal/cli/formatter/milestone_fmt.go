package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/milestones/internal/domain"
)

// FormatMilestoneLine renders one numbered milestone row. pos is 1-based.
func FormatMilestoneLine(pos int, m domain.Milestone, selected bool) string {
	cursor := "  "
	nameStyle := StyleFg
	if selected {
		cursor = StyleGreen.Render("▸ ")
		nameStyle = StyleBold
	}

	check := StyleDim.Render("[ ]")
	if m.Completed {
		check = StyleGreen.Render("[x]")
		nameStyle = StyleDim.Strikethrough(true)
	}

	line := fmt.Sprintf("%s%s %s %s", cursor, Dim(fmt.Sprintf("%2d.", pos)), check, nameStyle.Render(m.Name))
	if m.Note != "" {
		line += "  " + Dim(m.Note)
	}
	if m.Completed && m.CompletedAt != nil {
		line += "  " + StyleGreen.Render(Timestamp(*m.CompletedAt))
	}
	return line
}

// FormatMilestoneList renders all milestones, highlighting the one at cursor.
// Pass a negative cursor for no highlight.
func FormatMilestoneList(ms []domain.Milestone, cursor int) string {
	if len(ms) == 0 {
		return Dim("No milestones yet.")
	}
	lines := make([]string, len(ms))
	for i, m := range ms {
		lines[i] = FormatMilestoneLine(i+1, m, i == cursor)
	}
	return strings.Join(lines, "\n")
}

// FormatProjectSummary renders the heading, progress bar and counter for p.
// label is the user-chosen caption shown before the project name.
func FormatProjectSummary(p *domain.Project, label string) string {
	stats := p.Stats()
	var b strings.Builder
	b.WriteString(Dim(label+": ") + Bold(p.Name) + "\n")
	b.WriteString(RenderProgress(stats.Rate, 24))
	b.WriteString("  " + Dim(fmt.Sprintf("%d/%d completed", stats.Completed, stats.Total)))
	return b.String()
}

// FormatProjectDetail renders the summary followed by the milestone list.
func FormatProjectDetail(p *domain.Project, label string) string {
	return FormatProjectSummary(p, label) + "\n\n" + FormatMilestoneList(p.Milestones, -1) + "\n"
}
