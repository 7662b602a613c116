package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.ExportDir != "." || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Bus.Debounce != 16*time.Millisecond || cfg.Editor.SuccessDelay != time.Second {
		t.Fatalf("unexpected timing defaults: %+v", cfg)
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scopdash.yaml")
	raw := "export_dir: " + dir + "\nlog:\n  level: warn\nbus:\n  debounce: 50ms\nreport:\n  hidden_sections: [charts]\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SCOPDASH_LOG_LEVEL", "debug")
	t.Setenv("SCOPDASH_SUCCESS_DELAY", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ExportDir != filepath.Clean(dir) {
		t.Fatalf("expected export dir from file, got %s", cfg.ExportDir)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected env to override level, got %s", cfg.Log.Level)
	}
	if cfg.Bus.Debounce != 50*time.Millisecond {
		t.Fatalf("expected debounce from file, got %s", cfg.Bus.Debounce)
	}
	if cfg.Editor.SuccessDelay != 250*time.Millisecond {
		t.Fatalf("expected success delay from env, got %s", cfg.Editor.SuccessDelay)
	}
	if len(cfg.Report.HiddenSections) != 1 || cfg.Report.HiddenSections[0] != "charts" {
		t.Fatalf("unexpected hidden sections: %v", cfg.Report.HiddenSections)
	}
}

func TestLoadRejectsBadEnvDuration(t *testing.T) {
	t.Setenv("SCOPDASH_DEBOUNCE", "soon")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected invalid duration error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error for missing file")
	}
}
