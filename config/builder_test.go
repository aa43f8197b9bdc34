package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jpalmerr/poolhttp"
)

func TestBuildOptions_Default(t *testing.T) {
	opts, err := BuildOptions(Default())
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	srv, err := poolhttp.New(poolhttp.StaticOnly, opts...)
	if err != nil {
		t.Fatalf("poolhttp.New() error = %v", err)
	}
	if srv.Port() != "8080" {
		t.Errorf("Port() = %q, want %q", srv.Port(), "8080")
	}
	if srv.Workers() != 8 {
		t.Errorf("Workers() = %d, want 8", srv.Workers())
	}
}

func TestBuildOptions_FromParsedConfig(t *testing.T) {
	cfg, err := Parse([]byte("port: 9191\nworkers: 3\nbody_too_large: ignore\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	srv, err := poolhttp.New(poolhttp.StaticOnly, opts...)
	if err != nil {
		t.Fatalf("poolhttp.New() error = %v", err)
	}
	if srv.Port() != "9191" {
		t.Errorf("Port() = %q, want %q", srv.Port(), "9191")
	}
	if srv.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", srv.Workers())
	}
}

func TestBuildOptions_InvalidPolicy(t *testing.T) {
	cfg := Default()
	cfg.BodyTooLarge = "drop"

	_, err := BuildOptions(cfg)
	if err == nil || !strings.Contains(err.Error(), "body_too_large") {
		t.Errorf("BuildOptions() error = %v, want body_too_large error", err)
	}
}

func TestBuildOptions_InvalidValuesSurfaceInNew(t *testing.T) {
	// a hand-built Config skips Parse validation; New still rejects it
	cfg := Default()
	cfg.Workers = 0

	opts, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}
	if _, err := poolhttp.New(poolhttp.StaticOnly, opts...); err == nil {
		t.Error("poolhttp.New() expected error for zero workers, got nil")
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "info"

	logger, err := NewLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("server starting", "workers", 8)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1 (debug filtered): %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "server starting" {
		t.Errorf("msg = %v, want %q", record["msg"], "server starting")
	}
	if record["workers"] != float64(8) {
		t.Errorf("workers = %v, want 8", record["workers"])
	}
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "text"
	cfg.LogLevel = "debug"

	logger, err := NewLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("request received", "path", "/")
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "path=/") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantWarn  bool
		wantError bool
	}{
		{"debug", true, true},
		{"info", true, true},
		{"warn", true, true},
		{"error", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := Default()
			cfg.LogFormat = "text"
			cfg.LogLevel = tt.level

			logger, err := NewLogger(cfg, &buf)
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}

			logger.Warn("w")
			logger.Error("e")

			out := buf.String()
			if got := strings.Contains(out, "msg=w"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
			if got := strings.Contains(out, "msg=e"); got != tt.wantError {
				t.Errorf("error logged = %v, want %v", got, tt.wantError)
			}
		})
	}
}

func TestNewLogger_Invalid(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "logfmt"
	if _, err := NewLogger(cfg, &bytes.Buffer{}); err == nil {
		t.Error("NewLogger() expected error for unknown format, got nil")
	}

	cfg = Default()
	cfg.LogLevel = "trace"
	if _, err := NewLogger(cfg, &bytes.Buffer{}); err == nil {
		t.Error("NewLogger() expected error for unknown level, got nil")
	}
}
