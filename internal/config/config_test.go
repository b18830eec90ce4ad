package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".milestones", "milestones.db"), cfg.DBPath)
	assert.Equal(t, "https://milestones.local/", cfg.ShareBaseURL)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, ".", cfg.ReportDir)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"MILESTONES_DB":             "/tmp/m.db",
		"MILESTONES_SHARE_BASE_URL": "https://example.org/app",
		"MILESTONES_LOG_FILE":       "/tmp/m.log",
		"MILESTONES_REPORT_DIR":     "/tmp/reports",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{
		DBPath:       "/tmp/m.db",
		ShareBaseURL: "https://example.org/app",
		LogFile:      "/tmp/m.log",
		ReportDir:    "/tmp/reports",
	}, cfg)
}

func TestLoadFrom_IgnoresUnprefixedNames(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"DB": "/tmp/wrong.db", "MILESTONES_DB": "/tmp/right.db"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/right.db", cfg.DBPath)
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("MILESTONES_DB", "/tmp/process.db")
	t.Setenv("MILESTONES_REPORT_DIR", "out")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/process.db", cfg.DBPath)
	assert.Equal(t, "out", cfg.ReportDir)
}

func TestEnsureDBDir(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{DBPath: filepath.Join(dir, "nested", "m.db")}
	require.NoError(t, cfg.EnsureDBDir())
	assert.DirExists(t, filepath.Join(dir, "nested"))

	assert.NoError(t, Config{DBPath: ":memory:"}.EnsureDBDir())
}
