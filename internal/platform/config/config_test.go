package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"focusdeck/internal/platform/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	cfg, err := config.Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Owner != "default" {
		t.Fatalf("owner default mismatch: %q", cfg.Owner)
	}
	if cfg.FocusMinutes != 25 {
		t.Fatalf("focus minutes default mismatch: %d", cfg.FocusMinutes)
	}
	if cfg.DBPath != filepath.Join(base, "focusdeck.db") {
		t.Fatalf("db path default mismatch: %q", cfg.DBPath)
	}
	if !cfg.Notify {
		t.Fatalf("notify should default to true")
	}
}

func TestLoadReadsYAML(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	payload := "owner: alice\nfocus_minutes: 50\nnotify: false\ndb_path: /tmp/custom.db\n"
	if err := os.WriteFile(filepath.Join(base, "config.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Owner != "alice" || cfg.FocusMinutes != 50 || cfg.Notify || cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("yaml not applied: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "config.yaml"), []byte("owner: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(base); err == nil {
		t.Fatalf("malformed config should fail")
	}
}

func TestLoadNormalizesBadValues(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	payload := "owner: alice\nfocus_minutes: -5\ndb_path: \"  \"\n"
	if err := os.WriteFile(filepath.Join(base, "config.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FocusMinutes != 25 {
		t.Fatalf("negative focus minutes should reset to default, got %d", cfg.FocusMinutes)
	}
	if cfg.DBPath != filepath.Join(base, "focusdeck.db") {
		t.Fatalf("blank db path should reset to default, got %q", cfg.DBPath)
	}
}
