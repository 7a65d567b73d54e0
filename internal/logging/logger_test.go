package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leo/internal/logging"
)

func TestNewWritesJSONToFiles(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "leo.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("file message", logging.String("k", "v"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", content, err)
	}
	if line["msg"] != "file message" || line["level"] != "info" || line["k"] != "v" {
		t.Fatalf("unexpected JSON fields: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"invalid": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	h, err := logging.NewHandler(&buf, "console", slog.LevelDebug)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	logger := slog.New(h).With(logging.String(logging.FieldLogger, "a.b"))
	logger.Debug("[a.b] hello",
		logging.String(logging.FieldLevelName, "verbose"),
		logging.String("user", "jane doe"),
	)

	line := buf.String()
	for _, want := range []string{" VERBOSE a.b: [a.b] hello", `user="jane doe"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "level_name=") {
		t.Fatalf("level_name should be folded into the label: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h, _ := logging.NewHandler(&buf, "console", slog.LevelWarn)
	slog.New(h).Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}

func TestComponentLoggerOverride(t *testing.T) {
	var buf bytes.Buffer
	h, _ := logging.NewHandler(&buf, "json", slog.LevelDebug)
	base := slog.New(h)

	quiet := logging.ComponentLogger(base, "registry", map[string]string{"registry": "warn"})
	quiet.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("override should drop info, got %q", buf.String())
	}
	quiet.Warn("shown")
	if !strings.Contains(buf.String(), `"component":"registry"`) {
		t.Fatalf("expected component attr, got %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.WarnWithContext(logger, "ignored", "test_event")
}
