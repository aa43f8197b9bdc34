// Command example runs a hello-world application on poolhttp.
//
// It serves res/index.html for GET / and res/404.html for everything else.
// The port comes from the PORT environment variable (default 8080).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/poolhttp"
	"github.com/jpalmerr/poolhttp/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid environment", "error", err)
		os.Exit(1)
	}
	cfg.LogFormat = "text"

	logger, err := config.NewLogger(cfg, os.Stderr)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		logger.Error("failed to build options", "error", err)
		os.Exit(1)
	}

	app := helloApp{res: os.DirFS(cfg.ResourceDir), logger: logger}
	srv, err := poolhttp.New(app, append(opts, poolhttp.WithLogger(logger))...)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("  poolhttp hello world on http://localhost:%s\n", srv.Port())
	fmt.Printf("  serving %s with %d workers, Ctrl+C to stop\n", cfg.ResourceDir, srv.Workers())
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
