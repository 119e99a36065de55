package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/nerrad567/gray-logic-components/internal/infrastructure/config"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{"json stdout", config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}},
		{"text stderr", config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if logger := New(tt.cfg, "1.0.0"); logger == nil {
				t.Fatal("expected non-nil logger")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	logger := Default()
	child := logger.With("component", "webserver")

	if child == nil {
		t.Fatal("expected non-nil child logger")
	}
	if child == logger {
		t.Error("expected child logger to be different from parent")
	}
}

func TestNewWithWriter_DefaultFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, "test", &buf)

	logger.Info("test message", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry["service"] != serviceName {
		t.Errorf("service = %v, want %q", entry["service"], serviceName)
	}
	if entry["version"] != "test" {
		t.Errorf("version = %v, want test", entry["version"])
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want 'test message'", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want value", entry["key"])
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "warn", Format: "text"}, "test", &buf)

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn entry should be written")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Error("goes nowhere")
}
