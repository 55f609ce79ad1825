package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupDiscardByDefault(t *testing.T) {
	logger, closer, err := Setup("", "info")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()

	if logger == nil {
		t.Fatal("expected logger")
	}
	logger.Info("dropped")
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")

	logger, closer, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Debug("milestone reached", "index", 2)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "milestone reached") {
		t.Errorf("log file missing message, got %q", data)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty")

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info line missing")
	}
}
