package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/milestones/internal/domain"
)

// RenderStatsChart renders a two-segment bar of completed versus pending.
func RenderStatsChart(s domain.Stats, width int) string {
	if width < 2 {
		width = 2
	}
	if s.Total == 0 {
		return StyleDim.Render(strings.Repeat(emptyBlock, width))
	}
	done := s.Completed * width / s.Total
	return StyleGreen.Render(strings.Repeat(filledBlock, done)) +
		StyleYellow.Render(strings.Repeat(filledBlock, width-done))
}

// FormatStats renders totals, the completion rate and the chart.
func FormatStats(s domain.Stats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d\n", Dim("Total     "), s.Total))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Completed "), StyleGreen.Render(fmt.Sprint(s.Completed))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Pending   "), StyleYellow.Render(fmt.Sprint(s.Pending))))
	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("Rate      "), ProgressStyle(s.Rate).Render(fmt.Sprintf("%.1f%%", s.Rate))))
	b.WriteString(RenderStatsChart(s, 30) + "\n")
	b.WriteString(StyleGreen.Render("█") + Dim(" completed  ") + StyleYellow.Render("█") + Dim(" pending"))
	return RenderBox("Statistics", b.String())
}
