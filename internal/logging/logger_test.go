package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeWritesRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "wikiview.log")
	if err := Initialize(logPath, slog.LevelInfo); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { _ = Initialize("", slog.LevelInfo) })

	if Path() != logPath {
		t.Fatalf("Path() = %q", Path())
	}
	slog.Debug("hidden")
	slog.Info("navigate", "page", "pacman")
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "msg=navigate") || !strings.Contains(content, "page=pacman") {
		t.Fatalf("missing record: %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Fatalf("debug record written at info level: %q", content)
	}
}

func TestEmptyPathDiscards(t *testing.T) {
	if err := Initialize("", slog.LevelDebug); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if Path() != "" {
		t.Fatalf("Path() = %q", Path())
	}
	slog.Info("nothing to see")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}
