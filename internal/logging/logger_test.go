package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audioquality/internal/config"
	"audioquality/internal/diagnostics"
	"audioquality/internal/logging"
	"audioquality/internal/services"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesJSONLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "info"

	logger, err := logging.NewFromConfig(&cfg, "run-abc")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("score run started", logging.Int("files", 3))

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	line := strings.TrimSpace(strings.Split(content, "\n")[0])
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if record["msg"] != "score run started" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["run_id"] != "run-abc" {
		t.Fatalf("expected run id in record, got %v", record["run_id"])
	}
	if record["level"] != "info" {
		t.Fatalf("expected lower-case level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if content := readLog(t, logPath); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerFormatsComponentSubjectAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "tagging").Info("quality scored",
		logging.String(logging.FieldFile, "/music/album/01 - intro.flac"),
		logging.String(logging.FieldCodec, "flac"),
		logging.Int(logging.FieldQuality, 100),
		logging.String(logging.FieldRunID, "hidden-run"),
	)

	content := readLog(t, logPath)
	for _, fragment := range []string{"INFO [tagging] 01 - intro.flac – quality scored", "- Codec: flac", "- Quality: 100%", "+ 1 more field hidden"} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %q in console output %q", fragment, content)
		}
	}
	if strings.Contains(content, "hidden-run") {
		t.Fatalf("run id should be hidden at info level: %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "invalid", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("dropped")
	logger.Info("kept")

	content := readLog(t, logPath)
	if strings.Contains(content, "dropped") || !strings.Contains(content, "kept") {
		t.Fatalf("expected info level filtering, got %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-xyz")
	ctx = services.WithFilePath(ctx, "/music/a.mp3")
	logging.WithContext(ctx, logger).Info("contextual log")

	content := readLog(t, logPath)
	if !strings.Contains(content, `"run_id":"run-xyz"`) || !strings.Contains(content, `"file":"/music/a.mp3"`) {
		t.Fatalf("expected context fields, got %q", content)
	}
}

func TestDiagnosticSinkMapsSeverity(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sink.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	sink := logging.NewDiagnosticSink(logger)

	sink.Report(diagnostics.Event{
		Kind:      "probe.failed",
		Severity:  diagnostics.SeverityError,
		Component: "probe",
		Path:      "/music/missing.flac",
		Message:   "ffmpeg could not be started",
		Err:       errors.New("exec: not found"),
	})
	sink.Report(diagnostics.Event{
		Kind:     "probe.parse_miss",
		Severity: diagnostics.SeverityWarn,
		Fields:   map[string]any{"missing": "bitrate"},
	})

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(lines), lines)
	}
	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if first["level"] != "error" || first["event_type"] != "probe.failed" || first["component"] != "probe" {
		t.Fatalf("unexpected error record: %v", first)
	}
	if first["error"] != "exec: not found" {
		t.Fatalf("expected error text, got %v", first["error"])
	}
	if second["level"] != "warn" || second["msg"] != "probe.parse_miss" || second["missing"] != "bitrate" {
		t.Fatalf("unexpected warn record: %v", second)
	}
	if _, ok := second["impact"]; !ok {
		t.Fatalf("expected default impact on warnings: %v", second)
	}
}
