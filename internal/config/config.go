package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/histaudit/config.yaml"

// Config holds all histaudit configuration.
type Config struct {
	Browser  BrowserConfig  `yaml:"browser"`
	Report   ReportConfig   `yaml:"report"`
	Export   ExportConfig   `yaml:"export"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BrowserConfig selects where profiles are looked up. Empty values mean
// platform defaults and automatic profile selection.
type BrowserConfig struct {
	UserDataDir string `yaml:"user_data_dir"`
	Profile     string `yaml:"profile"`
}

type ReportConfig struct {
	Top          int  `yaml:"top"`
	Recent       int  `yaml:"recent"`
	FlaggedLimit int  `yaml:"flagged_limit"`
	Charts       bool `yaml:"charts"`
}

type ExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// SnapshotConfig controls the scratch copies of the browser stores. An
// empty Dir uses a temporary directory.
type SnapshotConfig struct {
	Dir  string `yaml:"dir"`
	Keep bool   `yaml:"keep"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings no run could honour.
func (c *Config) Validate() error {
	if c.Report.Top < 0 {
		return fmt.Errorf("report.top must not be negative (got %d)", c.Report.Top)
	}
	if c.Report.Recent < 0 {
		return fmt.Errorf("report.recent must not be negative (got %d)", c.Report.Recent)
	}
	if c.Report.FlaggedLimit < 0 {
		return fmt.Errorf("report.flagged_limit must not be negative (got %d)", c.Report.FlaggedLimit)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
