package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "scopdash.log")
	logger, err := New("info", path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "visible") || strings.Contains(out, "hidden") {
		t.Fatalf("unexpected log content: %s", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := New("loud", "", false); err == nil {
		t.Fatalf("expected level parse error")
	}
}

func TestForTUIWithoutPathIsNop(t *testing.T) {
	t.Parallel()
	logger, err := ForTUI("info", "", true)
	if err != nil {
		t.Fatalf("for tui: %v", err)
	}
	if logger.Core().Enabled(0) {
		t.Fatalf("expected nop logger")
	}
}
