package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every configuration variable name.
const EnvPrefix = "MILESTONES_"

// Config holds runtime settings read from the environment.
type Config struct {
	// DBPath is the SQLite file backing the key/value store.
	// Empty resolves to ~/.milestones/milestones.db.
	DBPath       string `env:"DB"`
	ShareBaseURL string `env:"SHARE_BASE_URL" envDefault:"https://milestones.local/"`
	// LogFile receives store use-case events. Empty disables logging.
	LogFile   string `env:"LOG_FILE"`
	ReportDir string `env:"REPORT_DIR" envDefault:"."`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads configuration from environ, or from the process environment
// when environ is nil.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := defaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}

func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".milestones", "milestones.db"), nil
}

// EnsureDBDir creates the parent directory of the database file.
func (c Config) EnsureDBDir() error {
	if c.DBPath == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}
