// Package report renders plain-text progress reports for a project.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/milestones/internal/domain"
)

// TimeLayout formats generation and completion times in reports.
const TimeLayout = "2006/01/02 15:04:05"

const rule = "================"

// Render builds the report text for p as of generatedAt.
func Render(p *domain.Project, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("Project Progress Report\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Project: %s\n", p.Name)
	fmt.Fprintf(&b, "Progress: %.1f%%\n", p.Progress())
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Local().Format(TimeLayout))
	b.WriteString(rule + "\n\n")
	b.WriteString("Milestones:\n")

	for i, m := range p.Milestones {
		status := "[ ] not done"
		if m.Completed {
			status = "[x] done"
		}
		fmt.Fprintf(&b, "%d. %s %s", i+1, m.Name, status)
		if m.Completed && m.CompletedAt != nil {
			fmt.Fprintf(&b, " (completed %s)", m.CompletedAt.Local().Format(TimeLayout))
		}
		b.WriteString("\n")
		if m.Note != "" {
			fmt.Fprintf(&b, "   Note: %s\n", m.Note)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FileName returns the report file name for a project named name on the
// UTC date of at. Path separators in name are replaced.
func FileName(name string, at time.Time) string {
	safe := strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	if strings.TrimSpace(safe) == "" {
		safe = "project"
	}
	return fmt.Sprintf("%s_progress_report_%s.txt", safe, at.UTC().Format(time.DateOnly))
}

// Write renders the report for p into dir and returns the written path.
func Write(dir string, p *domain.Project, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	path := filepath.Join(dir, FileName(p.Name, at))
	if err := os.WriteFile(path, []byte(Render(p, at)), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
