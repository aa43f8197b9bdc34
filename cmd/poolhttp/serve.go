package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/poolhttp"
	"github.com/jpalmerr/poolhttp/config"
)

// shutdownTimeout bounds how long serve waits for queued connections to
// drain after a signal.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	Long: `Start the poolhttp server.

Without -c the defaults are used and the port is taken from the PORT
environment variable (8080 if unset). Flags override both.

The server runs until interrupted (Ctrl+C) or receives SIGTERM. Connections
already accepted are served before the process exits.

Example:
  poolhttp serve
  poolhttp serve -c poolhttp.yaml
  poolhttp serve --port 3000 --workers 4 --root ./public`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file")
	cmd.Flags().String("port", "", "port to listen on (overrides config)")
	cmd.Flags().Int("workers", 0, "number of workers (overrides config)")
	cmd.Flags().String("root", "", "resource directory (overrides config)")
}

// loadConfig reads the config file named by --config, or falls back to the
// environment, then applies the override flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		port, _ := flags.GetString("port")
		cfg.Port = config.Port(port)
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("root") {
		cfg.ResourceDir, _ = flags.GetString("root")
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}
	opts = append(opts, poolhttp.WithLogger(logger))

	srv, err := poolhttp.New(poolhttp.StaticOnly, opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("config loaded",
		"port", cfg.Port.String(),
		"workers", cfg.Workers,
		"resource_dir", cfg.ResourceDir,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	return waitForShutdown(ctx, errChan, logger.Warn)
}

// waitForShutdown waits for the server to return. Once ctx is done it gives
// the server shutdownTimeout to drain before giving up on it.
func waitForShutdown(ctx context.Context, errChan <-chan error, warn func(string, ...any)) error {
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-time.After(shutdownTimeout):
			warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
