// Package main is the entry point for the poolhttp CLI.
//
// The CLI runs the server with no application of its own, so every request
// is answered from the resource directory.
//
// Usage:
//
//	poolhttp serve                      # Serve ./res on $PORT or 8080
//	poolhttp serve -c poolhttp.yaml     # Serve with a config file
//	poolhttp validate -c poolhttp.yaml  # Validate configuration
//	poolhttp version                    # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "poolhttp",
	Short: "A small multi-worker HTTP/1.1 static file server",
	Long: `poolhttp is a small HTTP/1.1 server backed by a fixed pool of workers.

Each connection carries one request. Requests are served from the
resource directory; missing files get the 404.html page and malformed
requests get bad_request.html.

Quick start:
  1. Put an index.html in ./res
  2. Run: poolhttp serve
  3. Open http://localhost:8080 in your browser

Example config:
  port: "${PORT:-8080}"
  workers: 8
  resource_dir: res
  log_format: text`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already prints the error
		os.Exit(1)
	}
}

func main() {
	Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this poolhttp binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "poolhttp %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
