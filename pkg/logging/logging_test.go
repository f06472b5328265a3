package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/folio/pkg/logging"
)

func TestNewWithWriter_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format logging.Format
		check  func(t *testing.T, out string)
	}{
		{
			name:   "json",
			format: logging.FormatJSON,
			check: func(t *testing.T, out string) {
				var entry map[string]any
				if err := json.Unmarshal([]byte(out), &entry); err != nil {
					t.Fatalf("output is not JSON: %v", err)
				}
				if entry["system"] != "categories" {
					t.Errorf("system = %v, want categories", entry["system"])
				}
			},
		},
		{
			name:   "text",
			format: logging.FormatText,
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, "system=categories") {
					t.Errorf("output = %q, want system attribute", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: tt.format}, &buf)
			logger.Info("category created", "system", "categories")
			tt.check(t, buf.String())
		})
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn entry should be written")
	}
}

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.want {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{"DEBUG", logging.LevelDebug},
		{" Info ", logging.LevelInfo},
		{"warning", logging.LevelWarn},
		{"error", logging.LevelError},
		{"loud", "loud"},
	}

	for _, tt := range tests {
		if got := logging.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewWithWriter_UTCTime(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}, &buf)
	logger.Info("document created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	ts, _ := entry["time"].(string)
	if !strings.HasSuffix(ts, "Z") {
		t.Errorf("time = %q, want UTC", ts)
	}
}

func TestNewWithWriter_AddSource(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText, AddSource: true}, &buf)
	logger.Info("folder created")

	if !strings.Contains(buf.String(), "source=") {
		t.Errorf("output = %q, want source attribute", buf.String())
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "DEBUG")
	t.Setenv("TEST_LOG_ADD_SOURCE", "true")

	cfg := &logging.Config{Format: "JSON"}
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT_UNSET", AddSource: "TEST_LOG_ADD_SOURCE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.AddSource {
		t.Error("AddSource = false, want true from environment")
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  logging.Config
	}{
		{"level", logging.Config{Level: "loud"}},
		{"format", logging.Config{Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}
