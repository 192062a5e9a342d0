package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"warn level", "warn", slog.LevelWarn, slog.LevelInfo},
		{"error level", "error", slog.LevelError, slog.LevelWarn},
		{"default info", "", slog.LevelInfo, slog.LevelDebug},
		{"unknown falls back to info", "loud", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			if !logger.Enabled(context.Background(), tt.enabled) {
				t.Errorf("expected level %v to be enabled for %q", tt.enabled, tt.level)
			}
			if logger.Enabled(context.Background(), tt.muted) {
				t.Errorf("expected level %v to be disabled for %q", tt.muted, tt.level)
			}
		})
	}
}

func TestComponent(t *testing.T) {
	logger := Default().Component("booking")
	if logger == nil || logger.Logger == nil {
		t.Fatal("expected component logger")
	}
}
