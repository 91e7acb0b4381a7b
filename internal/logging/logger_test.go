package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chdbatch/internal/config"
	"chdbatch/internal/logging"
)

func TestNewFromConfigAppendsToLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg, "session-1")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Error("chdman not found", logging.String("path", "/opt/chdman"))
	logger.Info("second line")

	content, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), content)
	}
	if !strings.Contains(lines[0], " | ERROR | chdman not found") {
		t.Fatalf("unexpected error line: %q", lines[0])
	}
	if !strings.Contains(lines[0], "path=/opt/chdman") || !strings.Contains(lines[0], "session_id=session-1") {
		t.Fatalf("expected attributes in line: %q", lines[0])
	}
	stamp := strings.SplitN(lines[0], " | ", 2)[0]
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Fatalf("expected RFC3339 timestamp prefix, got %q", stamp)
	}
}

func TestConsoleLoggerComponentPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "classifier").Warn("path skipped", logging.Error(errors.New("missing file")))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "| WARNING | classifier: path skipped") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, `error="missing file"`) {
		t.Fatalf("expected quoted error value, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", line)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}, SessionID: "abc"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("debug message", logging.Int("count", 3))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &record); err != nil {
		t.Fatalf("decode json line: %v (%q)", err, content)
	}
	if record["level"] != "debug" || record["session_id"] != "abc" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if src, _ := record["source"].(string); !strings.Contains(src, ".go:") {
		t.Fatalf("expected source at debug level, got %v", record["source"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored")
	if logger.Enabled(t.Context(), 100) {
		t.Fatal("expected nop logger to be disabled")
	}
}

func TestWarnWithContextFillsMissingFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{OutputPaths: []string{logPath}, SessionID: "s-1"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "zip skipped", "zip_destination_exists",
		logging.String(logging.FieldImpact, "archive contents not imported"),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	for _, want := range []string{
		"session_id=s-1",
		"event_type=zip_destination_exists",
		`impact="archive contents not imported"`,
		"error_hint=",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Count(line, "impact=") != 1 {
		t.Fatalf("caller impact should replace the default: %q", line)
	}
}
