package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerWithWriter("info", &buf)
	child := log.With("partner", "acme")

	child.Debug("hidden")

	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}

	log.SetLevel("debug")
	child.Debug("shown")

	out := buf.String()
	if !strings.Contains(out, "shown") || !strings.Contains(out, "partner=acme") {
		t.Errorf("output = %q, want debug record with partner attribute", out)
	}
}
