package poolhttp

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// serverConfig holds mutable state during Server construction.
type serverConfig struct {
	port      string
	workers   int
	resources fs.FS
	pages     fs.FS
	parser    Parser
	logger    *slog.Logger
}

// Option is a function that configures a [Server] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithPort], [WithWorkers], [WithResourceDir],
// [WithResources], [WithMaxBodyBytes], [WithBodyTooLarge], [WithLogger].
type Option func(*serverConfig) error

// WithPort sets the TCP port the server binds on all interfaces.
//
// The port is passed to the network stack as is, so "0" picks a free port.
// Defaults to "8080" if not specified.
//
// Returns an error if port is empty.
func WithPort(port string) Option {
	return func(cfg *serverConfig) error {
		if port == "" {
			return errors.New("port cannot be empty")
		}
		cfg.port = port
		return nil
	}
}

// WithWorkers sets the number of worker goroutines serving connections.
//
// The count is fixed for the life of the server. With n workers busy, the
// n+1-th connection waits until one of them finishes. Defaults to 8.
//
// Returns an error if n is zero or negative.
func WithWorkers(n int) Option {
	return func(cfg *serverConfig) error {
		if n <= 0 {
			return errors.New("worker count must be positive")
		}
		cfg.workers = n
		return nil
	}
}

// WithResourceDir serves static files and designated pages from dir on the
// local filesystem. Defaults to "res".
//
// The directory does not need to exist when the server starts; missing
// files are answered with 404.
//
// Returns an error if dir is empty.
func WithResourceDir(dir string) Option {
	return func(cfg *serverConfig) error {
		if dir == "" {
			return errors.New("resource directory cannot be empty")
		}
		cfg.resources = os.DirFS(dir)
		return nil
	}
}

// WithResources serves static files and designated pages from fsys instead
// of a directory on disk. Useful with embed.FS and in tests.
//
// Returns an error if fsys is nil.
func WithResources(fsys fs.FS) Option {
	return func(cfg *serverConfig) error {
		if fsys == nil {
			return errors.New("resources cannot be nil")
		}
		cfg.resources = fsys
		return nil
	}
}

// WithMaxBodyBytes sets the largest Content-Length the server reads.
// Defaults to 4096.
//
// Returns an error if n is zero or negative.
func WithMaxBodyBytes(n int) Option {
	return func(cfg *serverConfig) error {
		if n <= 0 {
			return errors.New("max body bytes must be positive")
		}
		cfg.parser.MaxBodyBytes = n
		return nil
	}
}

// WithBodyTooLarge selects how requests above the body limit are treated:
// [RejectOversizedBody] answers 400 Bad Request, [IgnoreOversizedBody] hands
// the request to the application with an empty body.
// Defaults to RejectOversizedBody.
func WithBodyTooLarge(policy BodyPolicy) Option {
	return func(cfg *serverConfig) error {
		switch policy {
		case RejectOversizedBody, IgnoreOversizedBody:
		default:
			return errors.New("unknown body policy")
		}
		cfg.parser.BodyTooLarge = policy
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the server, its accept loop and
// its workers. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serverConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
