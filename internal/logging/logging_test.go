package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInit_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "text", &buf)

	New("harness").Info("investigation started", "ticket", "t-1")

	out := buf.String()
	if !strings.Contains(out, "component=harness") {
		t.Errorf("expected component attribute, got %q", out)
	}
	if !strings.Contains(out, "investigation started") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)

	New("gate").Info("decision", "action", "auto_execute")

	out := buf.String()
	if !strings.Contains(out, `"component":"gate"`) {
		t.Errorf("expected JSON component field, got %q", out)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	slog.Debug("hidden")
	slog.Info("also hidden")
	slog.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info output should be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn output missing, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"  Debug ", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
