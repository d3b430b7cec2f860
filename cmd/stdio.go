package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"braintree-mcp/internal/braintree"
	"braintree-mcp/internal/bridge"
	"braintree-mcp/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	stdioConfigFile string
	stdioDebug      bool
)

// stdioCmd serves the MCP protocol over stdin/stdout. This is the transport
// desktop assistants spawn the server with; it serves exactly one logical
// session and exits when the client closes the pipe.
var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdin/stdout for desktop assistant integration",
	Long: `Serves the braintree-mcp tools over the process pipe.

This is the transport to configure in a desktop assistant's MCP server
list. All logging goes to stderr; stdout is reserved for the protocol.
The process exits when the client closes the pipe.`,
	Args: cobra.NoArgs,
	RunE: runStdio,
}

// runStdio is the main entry point for the stdio command.
func runStdio(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if stdioDebug {
		level = logging.LevelDebug
	}
	// stdout carries the MCP wire protocol, so all logs go to stderr.
	logging.InitForCLI(level, os.Stderr)

	cfg, err := loadConfig(stdioConfigFile)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Info("Bootstrap", "Configured for Braintree environment: %s", cfg.Environment)

	srv := bridge.New(bridge.Options{
		Name:      "braintree",
		Version:   rootCmd.Version,
		Transport: bridge.TransportStdio,
	}, braintree.NewClient(cfg))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ServeStdio(ctx)
}

func init() {
	rootCmd.AddCommand(stdioCmd)

	stdioCmd.Flags().StringVar(&stdioConfigFile, "config-file", "", "Optional YAML settings file (credentials stay environment-only)")
	stdioCmd.Flags().BoolVar(&stdioDebug, "debug", false, "Enable debug logging (to stderr)")
}
