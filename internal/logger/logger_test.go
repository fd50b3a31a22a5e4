package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "careerdeck.log")
	log, err := New(Options{JSON: true, Output: path})
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}

	log.Debug("hidden below info")
	log.Info("digest ready")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry at info level, got %d: %s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not json: %v", err)
	}
	if entry["step"] != "digest ready" || entry["level"] != "info" || entry["app"] != appName {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewDebugConsole(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "debug.log")
	log, err := New(Options{Debug: true, Output: path})
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}

	log.Debug("loading job catalog")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "debug") || !strings.Contains(string(data), "loading job catalog") {
		t.Fatalf("expected console debug entry, got %q", data)
	}
}

func TestNewDefaultsToStderr(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}); err != nil {
		t.Fatalf("creating logger: %v", err)
	}
}
