package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/milestones/internal/domain"
)

// ProjectRow is one entry of a project listing.
type ProjectRow struct {
	ID      string
	Project *domain.Project
	Current bool
}

// FormatProjectList renders a styled project table inside a bordered box.
func FormatProjectList(rows []ProjectRow, now time.Time) string {
	headers := []string{"", "ID", "NAME", "PROGRESS", "UPDATED"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		marker := " "
		name := StyleFg.Render(r.Project.Name)
		if r.Current {
			marker = StyleGreen.Render("●")
			name = Bold(r.Project.Name)
		}
		stats := r.Project.Stats()
		cells = append(cells, []string{
			marker,
			StyleGreen.Render(domain.DisplayID(r.ID)),
			name,
			RenderCompactBar(stats.Rate, 10, false) + fmt.Sprintf(" %d/%d", stats.Completed, stats.Total),
			Dim(RelativeTime(r.Project.UpdatedAt, now)),
		})
	}
	return RenderBox("Projects", RenderTable(headers, cells))
}
