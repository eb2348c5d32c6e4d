package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/browserhist/internal/browser"
	"github.com/runnerr0/browserhist/internal/logging"
)

// Default config file path.
const DefaultConfigPath = "~/.config/browserhist/config.yaml"

// Config holds all browserhist configuration.
type Config struct {
	Browser  string         `yaml:"browser"`
	History  HistoryConfig  `yaml:"history"`
	Favicons FaviconsConfig `yaml:"favicons"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HistoryConfig struct {
	Limit          int      `yaml:"limit"`
	DatabasePath   string   `yaml:"database_path"`
	ScratchDir     string   `yaml:"scratch_dir"`
	ExcludeDomains []string `yaml:"exclude_domains"`
	HideSensitive  bool     `yaml:"hide_sensitive"`
}

type FaviconsConfig struct {
	Enabled   bool          `yaml:"enabled"`
	CacheDir  string        `yaml:"cache_dir"`
	Endpoint  string        `yaml:"endpoint"`
	Size      int           `yaml:"size"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Pretty bool   `yaml:"pretty"`
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

	return cfg, nil
}

// Validate rejects settings that would only fail later at query time.
func (c *Config) Validate() error {
	if _, err := browser.Parse(c.Browser); err != nil {
		return err
	}
	if c.History.Limit < 0 || c.History.Limit > browser.MaxLimit {
		return fmt.Errorf("history.limit must be between 0 and %d, got %d", browser.MaxLimit, c.History.Limit)
	}
	if c.Favicons.Size <= 0 {
		return fmt.Errorf("favicons.size must be positive, got %d", c.Favicons.Size)
	}
	if c.Favicons.Timeout <= 0 {
		return fmt.Errorf("favicons.timeout must be positive, got %s", c.Favicons.Timeout)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
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
