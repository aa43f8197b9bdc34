package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jpalmerr/poolhttp"
)

// BuildOptions converts parsed configuration into server options.
//
// The logger is not part of the result; pass [NewLogger] output through
// [poolhttp.WithLogger] alongside these options.
func BuildOptions(cfg *Config) ([]poolhttp.Option, error) {
	policy, err := poolhttp.ParseBodyPolicy(cfg.BodyTooLarge)
	if err != nil {
		return nil, fmt.Errorf("body_too_large: %w", err)
	}

	return []poolhttp.Option{
		poolhttp.WithPort(cfg.Port.String()),
		poolhttp.WithWorkers(cfg.Workers),
		poolhttp.WithResourceDir(cfg.ResourceDir),
		poolhttp.WithMaxBodyBytes(cfg.MaxBodyBytes),
		poolhttp.WithBodyTooLarge(policy),
	}, nil
}

// NewLogger builds the logger described by log_level and log_format,
// writing to w.
func NewLogger(cfg *Config, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.LogFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log_format: must be json or text, got %q", cfg.LogFormat)
	}
}
