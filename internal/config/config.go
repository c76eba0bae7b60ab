// ABOUTME: Configuration management for mailprompt with YAML config loading.
// ABOUTME: Handles store and log paths, UI timings, XDG defaults, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "mailprompt"

// Default UI timings.
const (
	DefaultDebounce  = 500 * time.Millisecond
	DefaultCopiedFor = 2 * time.Second
	DefaultLogLevel  = "info"
)

// Config stores mailprompt configuration loaded from ~/.config/mailprompt/config.yaml.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	UI    UIConfig    `yaml:"ui"`
}

// StoreConfig holds the durable key-value store location.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LogConfig holds the log file location and level.
type LogConfig struct {
	Path  string `yaml:"path,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// UIConfig holds interactive timing settings.
type UIConfig struct {
	Debounce  time.Duration `yaml:"debounce,omitempty"`
	CopiedFor time.Duration `yaml:"copied_for,omitempty"`
}

// GetStorePath returns the store path, defaulting to $XDG_DATA_HOME/mailprompt/mailprompt.db.
func (c *Config) GetStorePath() (string, error) {
	if c.Store.Path != "" {
		return ExpandPath(c.Store.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".db"), nil
}

// GetLogPath returns the log file path, defaulting to $XDG_STATE_HOME/mailprompt/mailprompt.log.
func (c *Config) GetLogPath() (string, error) {
	if c.Log.Path != "" {
		return ExpandPath(c.Log.Path)
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.Log.Level == "" {
		return DefaultLogLevel
	}
	return strings.ToLower(c.Log.Level)
}

// GetDebounce returns the derivation quiescence window.
func (c *Config) GetDebounce() time.Duration {
	if c.UI.Debounce <= 0 {
		return DefaultDebounce
	}
	return c.UI.Debounce
}

// GetCopiedFor returns how long the copied confirmation stays visible.
func (c *Config) GetCopiedFor() time.Duration {
	if c.UI.CopiedFor <= 0 {
		return DefaultCopiedFor
	}
	return c.UI.CopiedFor
}

// DataDir returns the default data directory.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the default state directory, used for logs.
func StateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func xdgDir(env string, fallback ...string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
