package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPathAbsentFileUsesDefaults(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}
	if cfg.BaseURL() != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want default", cfg.BaseURL())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel())
	}
	if cfg.TranscriptMaxLines() != 2000 {
		t.Fatalf("TranscriptMaxLines = %d, want 2000", cfg.TranscriptMaxLines())
	}
	if !cfg.UI.Mouse {
		t.Fatalf("mouse support should default on")
	}
}

func TestLoadFromPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "http://localhost:3000/"

[logging]
level = "debug"

[export]
dir = "/tmp/cashly-exports"

[ui]
transcript_max_lines = 500
mouse = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}
	if cfg.BaseURL() != "http://localhost:3000" {
		t.Fatalf("BaseURL = %q, trailing slash must be trimmed", cfg.BaseURL())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel())
	}
	dir, err := cfg.ExportDir()
	if err != nil {
		t.Fatalf("ExportDir: %v", err)
	}
	if dir != "/tmp/cashly-exports" {
		t.Fatalf("ExportDir = %q", dir)
	}
	if cfg.TranscriptMaxLines() != 500 {
		t.Fatalf("TranscriptMaxLines = %d", cfg.TranscriptMaxLines())
	}
	if cfg.UI.Mouse {
		t.Fatalf("mouse should be disabled by the file")
	}
}

func TestLoadFromPathMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\nbase_url ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadFromPath(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}
