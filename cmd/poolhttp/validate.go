package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/poolhttp/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a poolhttp configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  poolhttp validate -c poolhttp.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Port:           %s\n", cfg.Port)
	fmt.Fprintf(out, "  Workers:        %d\n", cfg.Workers)
	fmt.Fprintf(out, "  Resource dir:   %s\n", cfg.ResourceDir)
	fmt.Fprintf(out, "  Max body bytes: %d (%s when exceeded)\n", cfg.MaxBodyBytes, cfg.BodyTooLarge)
	fmt.Fprintf(out, "  Logging:        %s, %s\n", cfg.LogLevel, cfg.LogFormat)

	return nil
}
