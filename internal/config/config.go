// Package config handles XDG configuration directory, file paths and the
// backend address.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "tasker"

	// TokenFile is the stored auth token filename.
	TokenFile = "token"

	// ConfigFile is the optional settings filename inside the config dir.
	ConfigFile = "tasker.toml"

	// EnvBaseURL is the environment variable naming the backend origin.
	EnvBaseURL = "TASKER_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the backend origin, e.g. "https://tasks.example.com".
	// Empty means no backend is configured.
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings is the subset of Config read from tasker.toml.
type fileSettings struct {
	BaseURL string `toml:"base_url"`
}

// New creates a Config with the default or specified config directory.
// The base URL is resolved in priority order: the baseURL argument
// (from the --url flag), the TASKER_API_URL environment variable, then
// the base_url key in tasker.toml. A missing config file is not an error.
func New(configDir, baseURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	switch {
	case baseURL != "":
		cfg.BaseURL = baseURL
	case os.Getenv(EnvBaseURL) != "":
		cfg.BaseURL = os.Getenv(EnvBaseURL)
	default:
		settings, err := loadSettings(filepath.Join(dir, ConfigFile))
		if err != nil {
			return nil, err
		}
		cfg.BaseURL = settings.BaseURL
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return cfg, nil
}

// loadSettings reads tasker.toml. A missing file yields zero settings.
func loadSettings(path string) (fileSettings, error) {
	var settings fileSettings
	if _, err := os.Stat(path); err != nil {
		return settings, nil
	}
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return settings, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return settings, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
