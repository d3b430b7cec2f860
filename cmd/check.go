package cmd

import (
	"context"
	"fmt"
	"os"

	"braintree-mcp/internal/braintree"
	"braintree-mcp/pkg/logging"

	"github.com/spf13/cobra"
)

var checkConfigFile string

// checkCmd performs a one-shot connectivity check against Braintree. It uses
// the same client and configuration path as the server, so a passing check
// means the served braintree_ping tool will pass too.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity and authentication against the Braintree API",
	Long: `Issues the minimal authenticated ping query against the configured
Braintree environment and reports the result. Useful to verify credentials
before wiring the server into an assistant.

Exits non-zero when configuration is incomplete or the API is unreachable.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// runCheck is the main entry point for the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(logging.LevelWarn, os.Stderr)

	cfg, err := loadConfig(checkConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	result, err := braintree.NewClient(cfg).Ping(ctx)
	if err != nil {
		return fmt.Errorf("braintree connectivity check failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s environment)\n", result, cfg.Environment)
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkConfigFile, "config-file", "", "Optional YAML settings file (credentials stay environment-only)")
}
