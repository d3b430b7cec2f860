package cmd

import "braintree-mcp/internal/config"

// loadConfig loads the effective configuration, honoring the optional
// settings file when one was passed on the command line.
func loadConfig(configFile string) (config.Config, error) {
	if configFile != "" {
		return config.LoadFromFile(configFile)
	}
	return config.Load()
}
