package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UI.MaxSuggestions != 5 {
		t.Errorf("MaxSuggestions = %d, want 5", cfg.UI.MaxSuggestions)
	}
	if !cfg.WatchFile() {
		t.Error("WatchFile should default to true")
	}
	if !cfg.ShowPreview() {
		t.Error("ShowPreview should default to true")
	}
	if cfg.CommitAfterCancel() {
		t.Error("CommitAfterCancel should default to false")
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom on missing file: %v", err)
	}
	if cfg.UI.MaxSuggestions != 5 {
		t.Errorf("missing file should yield defaults, got MaxSuggestions=%d", cfg.UI.MaxSuggestions)
	}
}

func TestLoadFrom_ParsesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
dictionary:
  path: /tmp/words.jsonl
  watch_file: false
ui:
  max_suggestions: 0
  theme: light
experimental:
  commit_after_cancel: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Dictionary.Path != "/tmp/words.jsonl" {
		t.Errorf("Dictionary.Path = %q", cfg.Dictionary.Path)
	}
	if cfg.WatchFile() {
		t.Error("watch_file: false not honored")
	}
	if cfg.UI.MaxSuggestions != 5 {
		t.Errorf("MaxSuggestions not clamped to default, got %d", cfg.UI.MaxSuggestions)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
	if !cfg.CommitAfterCancel() {
		t.Error("commit_after_cancel: true not honored")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom should fail on malformed yaml")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Dictionary.Path = "/data/words.jsonl"
	cfg.UI.MaxSuggestions = 7

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Dictionary.Path != cfg.Dictionary.Path {
		t.Errorf("Path = %q, want %q", got.Dictionary.Path, cfg.Dictionary.Path)
	}
	if got.UI.MaxSuggestions != 7 {
		t.Errorf("MaxSuggestions = %d, want 7", got.UI.MaxSuggestions)
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigDir(); got != filepath.Join("/custom/config", "gt") {
		t.Errorf("ConfigDir = %q", got)
	}
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	if got := StateDir(); got != filepath.Join("/custom/state", "gt") {
		t.Errorf("StateDir = %q", got)
	}
}
