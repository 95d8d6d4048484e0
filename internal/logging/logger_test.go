package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFileLogger(t *testing.T, opts Options) (*slog.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	opts.OutputPaths = []string{path}
	opts.ErrorOutputPaths = []string{path}
	logger, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return logger, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestConsoleOutput(t *testing.T) {
	logger, path := newFileLogger(t, Options{Level: "info", Format: "console"})
	NewComponentLogger(logger, "linker").Info("placed file",
		String(FieldPath, "/in/a.mkv"),
		String(FieldDestination, "/lib/Movies/a.mkv"),
	)

	out := readLog(t, path)
	if !strings.Contains(out, "INFO") {
		t.Fatalf("level label missing: %q", out)
	}
	if !strings.Contains(out, "linker: placed file") {
		t.Fatalf("component prefix missing: %q", out)
	}
	if !strings.Contains(out, "path=/in/a.mkv") {
		t.Fatalf("attribute missing: %q", out)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	logger, path := newFileLogger(t, Options{Format: "console"})
	logger.Info("note", String("title", "Some Show"))

	out := readLog(t, path)
	if !strings.Contains(out, `title="Some Show"`) {
		t.Fatalf("value not quoted: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	logger, path := newFileLogger(t, Options{Level: "info", Format: "json"})
	logger.Info("rebuild finished", Int("linked", 3))

	line := strings.TrimSpace(readLog(t, path))
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("not valid JSON: %v: %q", err, line)
	}
	if record["msg"] != "rebuild finished" {
		t.Fatalf("unexpected msg %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level %v", record["level"])
	}
	if record["ts"] == nil {
		t.Fatal("timestamp missing")
	}
	if record["linked"] != float64(3) {
		t.Fatalf("unexpected linked %v", record["linked"])
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, path := newFileLogger(t, Options{Level: "warn", Format: "console"})
	logger.Info("hidden")
	logger.Warn("visible")

	out := readLog(t, path)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "pretty"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewForLibraryAppendsToLibraryLog(t *testing.T) {
	root := t.TempDir()
	logger, err := NewForLibrary(root, "info", "console")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("first run")

	logPath := filepath.Join(root, LogFileName)
	out := readLog(t, logPath)
	if !strings.Contains(out, "first run") {
		t.Fatalf("log file missing message: %q", out)
	}

	again, err := NewForLibrary(root, "info", "console")
	if err != nil {
		t.Fatal(err)
	}
	again.Info("second run")
	out = readLog(t, logPath)
	if !strings.Contains(out, "first run") || !strings.Contains(out, "second run") {
		t.Fatalf("log file should append, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("%q: got %v, want %v", input, got, want)
		}
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "test")
	logger.Info("must not panic")
}

func TestNewNopDiscards(t *testing.T) {
	NewNop().Error("discarded", Error(nil))
}
