// Package logging provides structured logging for braintree-mcp, built on
// Go's standard slog package.
//
// All log entries carry a subsystem identifier for categorization:
//
//   - **Bootstrap**: Application initialization and startup
//   - **Config**: Configuration loading and validation
//   - **Bridge**: MCP server and transport lifecycle
//   - **Braintree**: Upstream GraphQL API calls
//
// # Usage
//
//	import "braintree-mcp/pkg/logging"
//
//	// Initialize with Info level logging to stdout
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Braintree", "Sending request %s", id)
//	logging.Error("Bridge", err, "SSE server error")
//
// The stdio transport initializes the logger against stderr because stdout
// carries the MCP wire protocol.
package logging
