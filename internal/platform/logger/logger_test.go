package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/studyowl/studyowl-api/internal/config"
)

func TestSetupLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"case insensitive", "INFO"},
		{"invalid falls back to info", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			if err != nil {
				t.Fatalf("Setup returned error: %v", err)
			}
			if logger == nil {
				t.Fatal("Setup returned nil logger")
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	// Without an attached logger, the default is returned.
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("expected default logger for bare context")
	}

	ctx, buf := NewLogCaptureContext(t)
	log := FromContext(ctx)
	log.Info("context logger works", "key", "value")

	AssertLogContains(t, buf, "context logger works")

	entries, err := buf.GetLogEntries()
	if err != nil {
		t.Fatalf("failed to parse log entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0]["key"] != "value" {
		t.Errorf("expected structured field key=value, got %v", entries[0]["key"])
	}
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.Default().With("component", "test")

	if got := FromContextOrDefault(context.Background(), fallback); got != fallback {
		t.Error("expected provided fallback logger for bare context")
	}

	ctx, _ := NewLogCaptureContext(t)
	if got := FromContextOrDefault(ctx, fallback); got == fallback {
		t.Error("expected context logger to win over fallback")
	}
}
