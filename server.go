package poolhttp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"

	"github.com/jpalmerr/poolhttp/internal/listener"
	"github.com/jpalmerr/poolhttp/internal/pool"
	"github.com/jpalmerr/poolhttp/internal/static"
	"github.com/jpalmerr/poolhttp/resources"
)

const (
	defaultPort        = "8080"
	defaultWorkers     = 8
	defaultResourceDir = "res"
)

// Server is a multi-worker HTTP/1.1 server.
//
// Server reads one request per connection, passes it to its [Application],
// writes the response and closes the connection. Connections are served by a
// fixed pool of workers; the accept loop only hands them over.
//
// The typical lifecycle is:
//
//	srv, err := poolhttp.New(app, poolhttp.WithPort("8080"))
//	if err != nil {
//	    slog.Error("failed to create server", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	srv.Start(ctx) // blocks until ctx is cancelled
type Server struct {
	app     Application
	port    string
	workers int
	files   *static.Resolver
	parser  Parser
	logger  *slog.Logger
}

// New creates a [Server] for app with the given options.
//
// Defaults:
//   - Port: "8080"
//   - Workers: 8
//   - Resource directory: "res"
//   - Body limit: 4096 bytes, oversized bodies rejected
//
// Returns an error if app is nil or any option is invalid.
func New(app Application, opts ...Option) (*Server, error) {
	if app == nil {
		return nil, errors.New("application cannot be nil")
	}

	pages, err := fs.Sub(resources.Pages, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in pages: %w", err)
	}

	cfg := &serverConfig{
		port:    defaultPort,
		workers: defaultWorkers,
		pages:   pages,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.resources == nil {
		cfg.resources = os.DirFS(defaultResourceDir)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		app:     app,
		port:    cfg.port,
		workers: cfg.workers,
		files:   static.NewResolver(cfg.resources, cfg.pages),
		parser:  cfg.parser,
		logger:  logger,
	}, nil
}

// Start binds the configured port on all interfaces and serves until ctx is
// cancelled.
//
// Start is a blocking call. Returns an error if the port cannot be bound;
// returns nil after a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := listener.Listen(s.port)
	if err != nil {
		return fmt.Errorf("failed to bind to port %s: %w", s.port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
//
// Serve starts the worker pool, runs the accept loop, and on shutdown closes
// ln first and then waits for the workers to finish every connection that
// was already accepted. Serve takes ownership of ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("server starting",
		"addr", ln.Addr().String(),
		"workers", s.workers,
	)

	workers := pool.New(s.workers, s.logger)
	accept := listener.New(workers, s.serveConn, s.logger)

	err := accept.Serve(ctx, ln)

	// accept loop has stopped submitting, so the pool can drain safely
	workers.Close()

	if err != nil {
		return fmt.Errorf("accept loop failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Port returns the configured port.
func (s *Server) Port() string {
	return s.port
}

// Workers returns the configured worker count.
func (s *Server) Workers() int {
	return s.workers
}
