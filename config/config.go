// Package config provides YAML configuration parsing for poolhttp.
//
// This package enables running poolhttp as a standalone binary with a
// configuration file, as an alternative to wiring options in code.
//
// Example configuration:
//
//	port: "${PORT:-8080}"
//	workers: 8
//	resource_dir: res
//	max_body_bytes: 4096
//	body_too_large: reject
//	log_level: info
//	log_format: json
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/poolhttp"
)

// PortEnv is the environment variable consulted by [FromEnv].
const PortEnv = "PORT"

// Config is the root configuration structure for poolhttp.
//
// It maps directly to the YAML configuration file structure.
// Use [Load], [Parse], [Default] or [FromEnv] to create a Config.
type Config struct {
	// Port is the TCP port to bind on all interfaces. Defaults to "8080".
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Port Port `yaml:"port"`

	// Workers is the fixed number of connection workers. Defaults to 8.
	Workers int `yaml:"workers"`

	// ResourceDir is the static file directory. Defaults to "res".
	// Supports environment variable substitution.
	ResourceDir string `yaml:"resource_dir"`

	// MaxBodyBytes caps the request body size. Defaults to 4096.
	MaxBodyBytes int `yaml:"max_body_bytes"`

	// BodyTooLarge is "reject" (400) or "ignore" (empty body).
	// Defaults to "reject".
	BodyTooLarge string `yaml:"body_too_large"`

	// LogLevel is debug, info, warn or error. Defaults to "info".
	LogLevel string `yaml:"log_level"`

	// LogFormat is json or text. Defaults to "json".
	LogFormat string `yaml:"log_format"`
}

// Port is a TCP port kept in string form. It accepts both quoted and bare
// YAML scalars, so `port: 8080` and `port: "${PORT}"` both decode.
type Port string

// UnmarshalYAML implements yaml.Unmarshaler for Port.
func (p *Port) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("port must be a scalar, got %v", node.Kind)
	}
	*p = Port(node.Value)
	return nil
}

// String returns the port as passed to the network stack.
func (p Port) String() string {
	return string(p)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:         "8080",
		Workers:      8,
		ResourceDir:  "res",
		MaxBodyBytes: poolhttp.DefaultMaxBodyBytes,
		BodyTooLarge: poolhttp.RejectOversizedBody.String(),
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

// FromEnv returns [Default] with the port taken from the PORT environment
// variable when it is set and non-empty.
func FromEnv() (*Config, error) {
	cfg := Default()
	if port, ok := os.LookupEnv(PortEnv); ok && port != "" {
		cfg.Port = Port(port)
	}
	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Fields left out of the document take their [Default] values.
// Environment variables are expanded in port and resource_dir.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	port, err := expandEnvVars(string(c.Port))
	if err != nil {
		return fmt.Errorf("port: %w", err)
	}
	c.Port = Port(port)

	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port: must be a number, got %q", port)
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("port: must be between 0 and 65535, got %d", n)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("workers: must be positive, got %d", c.Workers)
	}

	dir, err := expandEnvVars(c.ResourceDir)
	if err != nil {
		return fmt.Errorf("resource_dir: %w", err)
	}
	if dir == "" {
		return fmt.Errorf("resource_dir: cannot be empty")
	}
	c.ResourceDir = dir

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes: must be positive, got %d", c.MaxBodyBytes)
	}

	if _, err := poolhttp.ParseBodyPolicy(c.BodyTooLarge); err != nil {
		return fmt.Errorf("body_too_large: %w", err)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format: must be json or text, got %q", c.LogFormat)
	}

	return nil
}

// parseLevel maps a log_level value to a slog level.
func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be debug, info, warn or error, got %q", s)
	}
}
