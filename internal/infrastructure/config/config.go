// Package config loads the user's configuration file. The loaded
// Config is passed into constructors explicitly; there is no package
// level configuration state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "WEEKPLAN_CONFIG"

// DefaultsConfig holds fallback values for new tasks.
type DefaultsConfig struct {
	Priority       string `yaml:"priority"`
	CheckFrequency string `yaml:"check_frequency"`
}

// BackupConfig controls journal snapshots.
type BackupConfig struct {
	Enabled           bool `yaml:"enabled"`
	MaxBackupsPerWeek int  `yaml:"max_backups_per_week"`
	RetentionDays     int  `yaml:"retention_days"`
}

// Config is the full user configuration.
type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Editor   string         `yaml:"editor"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Backup   BackupConfig   `yaml:"backup"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir: "~/weekplan",
		Editor:  "vim",
		Defaults: DefaultsConfig{
			Priority:       "medium",
			CheckFrequency: "weekly",
		},
		Backup: BackupConfig{
			Enabled:           true,
			MaxBackupsPerWeek: 50,
			RetentionDays:     90,
		},
	}
}

// DataPath returns the data directory with a leading ~ expanded.
func (c *Config) DataPath() string {
	return expandHome(c.DataDir)
}

// EditorCommand returns the editor, honoring $EDITOR when the config
// leaves it unset.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vim"
}

// Load reads the configuration from the first location that exists:
// the explicit path argument, $WEEKPLAN_CONFIG, ~/.config/weekplan/
// config.yaml, ./weekplan.yaml. Defaults apply when none is found.
// A file that exists but fails to parse is an error, not silently
// ignored.
func Load(path string) (*Config, error) {
	candidate := findConfigFile(path)
	if candidate == "" {
		return Default(), nil
	}

	// #nosec G304 -- the path is either user-supplied or a fixed location
	data, err := os.ReadFile(candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", candidate, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", candidate, err)
	}
	return cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return expandHome(explicit)
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return expandHome(env)
	}

	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "weekplan", "config.yaml"))
	}
	candidates = append(candidates, "weekplan.yaml")

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
