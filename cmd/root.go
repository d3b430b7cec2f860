package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the braintree-mcp application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "braintree-mcp",
	Short: "Bridge AI assistants to the Braintree GraphQL API over MCP",
	Long: `braintree-mcp exposes the Braintree payments GraphQL API as MCP tools
for AI assistants: a connectivity check, an arbitrary GraphQL pass-through,
and a legacy-ID translator.

The same tool contract is served over a stdio pipe ('braintree-mcp stdio',
for desktop assistant integration) or over a network transport
('braintree-mcp serve', SSE or streamable HTTP) for persistent
multi-client deployments.

Credentials are read once at process start from BRAINTREE_MERCHANT_ID,
BRAINTREE_PUBLIC_KEY, BRAINTREE_PRIVATE_KEY and BRAINTREE_ENVIRONMENT;
a .env file in the working directory is honored. Missing credentials are
fatal: the server refuses to start rather than serve tools that cannot
authenticate.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags. This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "braintree-mcp version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
