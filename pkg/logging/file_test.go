package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFileLogger(t *testing.T, format Format, level Level) (*FileLogger, string) {
	t.Helper()

	dir, err := os.MkdirTemp("", "dupenorris-logging-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "run.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: format,
		Level:  level,
	})
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	return logger, path
}

func TestFileLoggerText(t *testing.T) {
	logger, path := newFileLogger(t, FormatText, InfoLevel)

	ctx := context.Background()
	logger.Info(ctx, "indexing started", Fields{"root": "/data"})
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	line := string(data)
	if !strings.Contains(line, "[INFO]") {
		t.Errorf("expected level marker in %q", line)
	}
	if !strings.Contains(line, "indexing started") {
		t.Errorf("expected message in %q", line)
	}
	if !strings.Contains(line, "root=/data") {
		t.Errorf("expected field in %q", line)
	}
}

func TestFileLoggerJSON(t *testing.T) {
	logger, path := newFileLogger(t, FormatJSON, DebugLevel)

	ctx := context.Background()
	logger.Error(ctx, "file excluded", os.ErrPermission, Fields{"path": "/data/locked"})
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["message"] != "file excluded" {
		t.Errorf("message = %v, want 'file excluded'", entry["message"])
	}
	if entry["path"] != "/data/locked" {
		t.Errorf("path = %v, want /data/locked", entry["path"])
	}
	if entry["error"] == nil {
		t.Error("expected error field")
	}
}

func TestFileLoggerLevelFilter(t *testing.T) {
	logger, path := newFileLogger(t, FormatText, WarnLevel)

	ctx := context.Background()
	logger.Debug(ctx, "dropped", nil)
	logger.Info(ctx, "also dropped", nil)
	logger.Warn(ctx, "kept", nil)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	if strings.Contains(string(data), "dropped") {
		t.Errorf("low-severity entries should be filtered, got %q", string(data))
	}
	if !strings.Contains(string(data), "kept") {
		t.Errorf("warn entry missing from %q", string(data))
	}
}

func TestFileLoggerWithFields(t *testing.T) {
	logger, path := newFileLogger(t, FormatText, InfoLevel)

	child := logger.WithFields(Fields{"operation_id": "op-1"})
	child.Info(context.Background(), "hello", nil)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	if !strings.Contains(string(data), "operation_id=op-1") {
		t.Errorf("expected inherited field in %q", string(data))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
