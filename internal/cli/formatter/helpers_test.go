package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/milestones/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"zero", time.Time{}, "--"},
		{"just now", now, "now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3 hours ago"},
		{"future", now.Add(2 * time.Hour), "2 hours from now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.input, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	// CJK runes are two cells wide.
	assert.Equal(t, "我的…", Truncate("我的项目名称", 5))
}

func TestRenderBox_Title(t *testing.T) {
	out := RenderBox("stats", "body")
	assert.Contains(t, out, "STATS")
	assert.Contains(t, out, "body")
}

func TestFormatMilestoneList(t *testing.T) {
	done := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	ms := []domain.Milestone{
		{Name: "提案", Note: "123"},
		{Name: "排版", Completed: true, CompletedAt: &done},
	}

	out := FormatMilestoneList(ms, 0)
	assert.Contains(t, out, " 1.")
	assert.Contains(t, out, "[ ] 提案")
	assert.Contains(t, out, "123")
	assert.Contains(t, out, "[x] 排版")
	assert.Contains(t, out, Timestamp(done))
	assert.Contains(t, out, "▸")

	assert.Equal(t, "No milestones yet.", FormatMilestoneList(nil, -1))
}

func TestFormatProjectSummary(t *testing.T) {
	p := &domain.Project{Name: "Book A", Milestones: []domain.Milestone{
		{Name: "draft", Completed: true},
		{Name: "edit"},
	}}
	out := FormatProjectSummary(p, "name")
	assert.Contains(t, out, "name: Book A")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "1/2 completed")
}

func TestFormatStats(t *testing.T) {
	out := FormatStats(domain.Stats{Total: 4, Completed: 1, Pending: 3, Rate: 25})
	assert.Contains(t, out, "STATISTICS")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "pending")
}

func TestRenderStatsChart(t *testing.T) {
	assert.Equal(t, 10, countRunes(RenderStatsChart(domain.Stats{Total: 4, Completed: 1}, 10), filledBlock))
	assert.Equal(t, 10, countRunes(RenderStatsChart(domain.Stats{}, 10), emptyBlock))
}

func countRunes(s, block string) int {
	n := 0
	for _, r := range s {
		if string(r) == block {
			n++
		}
	}
	return n
}
