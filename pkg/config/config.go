// Package config handles loading and saving gt configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/gt/config.yaml
//   - Data:    ~/.local/share/gt/ (dictionaries)
//   - State:   ~/.local/state/gt/ (preferences database)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	MaxSuggestions int    `yaml:"max_suggestions,omitempty"` // Suggestion strip slot count (default 5)
	ShowPreview    *bool  `yaml:"show_preview,omitempty"`    // Floating gesture preview
	Theme          string `yaml:"theme,omitempty"`           // dark, light
}

// DictionaryConfig controls dictionary loading.
type DictionaryConfig struct {
	Path     string `yaml:"path,omitempty"`       // JSONL frequency dictionary
	Watch    *bool  `yaml:"watch_file,omitempty"` // Reload on file change (default true)
	MaxWords int    `yaml:"max_words,omitempty"`  // 0 = unlimited
}

// ExperimentalConfig holds experimental feature flags.
type ExperimentalConfig struct {
	CommitAfterCancel *bool `yaml:"commit_after_cancel,omitempty"`
}

// Config is the top-level configuration for gt.
type Config struct {
	Dictionary   DictionaryConfig   `yaml:"dictionary,omitempty"`
	UI           UIConfig           `yaml:"ui,omitempty"`
	Experimental ExperimentalConfig `yaml:"experimental,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	watch := true
	preview := true
	return Config{
		Dictionary: DictionaryConfig{
			Watch: &watch,
		},
		UI: UIConfig{
			MaxSuggestions: 5,
			ShowPreview:    &preview,
			Theme:          "dark",
		},
	}
}

// ConfigDir returns the XDG config directory for gt.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gt")
}

// DataDir returns the XDG data directory for gt.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "gt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "gt")
}

// StateDir returns the XDG state directory for gt.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "gt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "gt")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.UI.MaxSuggestions <= 0 {
		cfg.UI.MaxSuggestions = 5
	}
	cfg.Dictionary.Path = expandHome(cfg.Dictionary.Path)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// WatchFile reports whether dictionary file watching is enabled.
func (c Config) WatchFile() bool {
	if c.Dictionary.Watch == nil {
		return true
	}
	return *c.Dictionary.Watch
}

// ShowPreview reports whether the floating gesture preview is enabled.
func (c Config) ShowPreview() bool {
	if c.UI.ShowPreview == nil {
		return true
	}
	return *c.UI.ShowPreview
}

// CommitAfterCancel reports whether an end racing a cancel still commits.
func (c Config) CommitAfterCancel() bool {
	return c.Experimental.CommitAfterCancel != nil && *c.Experimental.CommitAfterCancel
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
