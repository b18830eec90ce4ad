package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/milestones/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	p := testutil.NewTestProject("Book A",
		testutil.WithMilestones("draft", "edit", "print"),
		testutil.WithCompleted(0),
	)
	p.Milestones[2].Note = ""

	out := Render(p, testutil.BaseTime)

	assert.True(t, strings.HasPrefix(out, "Project Progress Report\n================\n"))
	assert.Contains(t, out, "Project: Book A\n")
	assert.Contains(t, out, "Progress: 33.3%\n")
	assert.Contains(t, out, "Generated: "+testutil.BaseTime.Local().Format(TimeLayout))
	assert.Contains(t, out, "1. 节点 1 [x] done (completed "+testutil.BaseTime.Local().Format(TimeLayout)+")\n   Note: draft\n")
	assert.Contains(t, out, "2. 节点 2 [ ] not done\n   Note: edit\n")
	assert.Contains(t, out, "3. 节点 3 [ ] not done\n\n")
	assert.NotContains(t, out, "Note: \n")
}

func TestRender_EmptyProject(t *testing.T) {
	p := testutil.NewTestProject("Empty", testutil.WithMilestones())
	out := Render(p, testutil.BaseTime)
	assert.Contains(t, out, "Progress: 0.0%")
	assert.True(t, strings.HasSuffix(out, "Milestones:\n"))
}

func TestFileName(t *testing.T) {
	at := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Book A", "Book A_progress_report_2025-03-09.txt"},
		{"unicode", "我的项目", "我的项目_progress_report_2025-03-09.txt"},
		{"separators", "a/b\\c", "a_b_c_progress_report_2025-03-09.txt"},
		{"blank", "  ", "project_progress_report_2025-03-09.txt"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FileName(tc.in, at))
		})
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	p := testutil.NewTestProject("Book A", testutil.WithMilestones("draft"))

	path, err := Write(dir, p, testutil.BaseTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Book A_progress_report_2025-06-15.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render(p, testutil.BaseTime), string(data))
}
