package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /var/lib/genealogy.db\nformat: yaml\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.DBPath != "/var/lib/genealogy.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/var/lib/genealogy.db")
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want %q", cfg.Format, "yaml")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() on missing file succeeded, want error")
	}
}
