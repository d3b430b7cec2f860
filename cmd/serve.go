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
	serveHost       string
	servePort       int
	serveTransport  string
	serveConfigFile string
	serveDebug      bool
)

// serveCmd starts the MCP server on a network transport. This is the
// deployment mode for persistent, multi-client setups; desktop assistants
// use 'braintree-mcp stdio' instead.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on a network transport (SSE or streamable HTTP)",
	Long: `Starts the braintree-mcp server on a persistent network transport.

With the default SSE transport, clients open the event stream at /sse and
post messages to /message. The streamable-http transport serves the newer
MCP streamable HTTP protocol instead. Both serve the exact same tools as
the stdio variant.

The listen address defaults to 127.0.0.1:8001 and can be changed via flags,
the BRAINTREE_MCP_HOST/BRAINTREE_MCP_PORT environment variables, or the
optional settings file. Braintree credentials always come from the
environment (or a .env file).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if serveDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stdout)

	cfg, err := loadConfig(serveConfigFile)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags win over environment and settings file.
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	// Flag values bypass Load's validation, so re-check the merged result.
	if err := cfg.Validate(); err != nil {
		return err
	}

	transport := bridge.Transport(serveTransport)
	if transport != bridge.TransportSSE && transport != bridge.TransportStreamableHTTP {
		return fmt.Errorf("invalid transport %q: must be %q or %q",
			serveTransport, bridge.TransportSSE, bridge.TransportStreamableHTTP)
	}

	logging.Info("Bootstrap", "Configured for Braintree environment: %s", cfg.Environment)

	srv := bridge.New(bridge.Options{
		Name:      "braintree",
		Version:   rootCmd.Version,
		Transport: transport,
		Host:      cfg.Host,
		Port:      cfg.Port,
	}, braintree.NewClient(cfg))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-ctx.Done()
	logging.Info("Bootstrap", "Shutting down")
	return srv.Stop(context.Background())
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Address to bind the network transport to")
	serveCmd.Flags().IntVar(&servePort, "port", 8001, "Port to bind the network transport to")
	serveCmd.Flags().StringVar(&serveTransport, "transport", "sse", "MCP transport to serve (sse or streamable-http)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config-file", "", "Optional YAML settings file (credentials stay environment-only)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}
