package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnkeybot.log")

	logger, closeFn := NewLogger(Options{Format: "json", Level: "info", File: path})
	logger.Info("bot started", "backend", "hosted")
	logger.Debug("suppressed below info")

	if err := closeFn(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"msg":"bot started"`) || !strings.Contains(got, `"backend":"hosted"`) {
		t.Errorf("log file = %q, want JSON record for bot started", got)
	}
	if strings.Contains(got, "suppressed") {
		t.Errorf("log file contains debug record below configured level: %q", got)
	}
}
