package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Braintree GraphQL endpoints per environment.
const (
	SandboxEndpoint    = "https://payments.sandbox.braintree-api.com/graphql"
	ProductionEndpoint = "https://payments.braintree-api.com/graphql"
)

// Accepted values for BRAINTREE_ENVIRONMENT.
const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

// Config holds everything the bridge needs: the Braintree credentials tuple
// and the server settings. It is constructed once at startup and passed to
// handlers explicitly; nothing reads ambient process state after Load returns.
type Config struct {
	// Credentials are environment-only and never written to a settings file.
	MerchantID  string `env:"BRAINTREE_MERCHANT_ID"`
	PublicKey   string `env:"BRAINTREE_PUBLIC_KEY"`
	PrivateKey  string `env:"BRAINTREE_PRIVATE_KEY"`
	Environment string `env:"BRAINTREE_ENVIRONMENT"`

	// GraphQLURL overrides the endpoint derived from Environment. Used to
	// point the bridge at a stub upstream; unset in normal operation.
	GraphQLURL string `env:"BRAINTREE_GRAPHQL_URL"`

	// APIVersion is sent as the Braintree-Version header on every request.
	APIVersion string `env:"BRAINTREE_API_VERSION"`

	// Host and Port are only used by the network transports.
	Host string `env:"BRAINTREE_MCP_HOST"`
	Port int    `env:"BRAINTREE_MCP_PORT"`

	// Timeout bounds each upstream HTTP request.
	Timeout time.Duration `env:"BRAINTREE_MCP_TIMEOUT"`
}

// fileConfig is the shape of the optional YAML settings file. Only
// non-credential settings can be configured here; pointer fields distinguish
// "absent" from zero values when merging over defaults.
type fileConfig struct {
	Host       *string `yaml:"host,omitempty"`
	Port       *int    `yaml:"port,omitempty"`
	APIVersion *string `yaml:"apiVersion,omitempty"`
	Timeout    *string `yaml:"timeout,omitempty"`
}

// Default returns the built-in configuration defaults. The listen address
// and API version match the upstream Braintree recommendations; credentials
// have no defaults and must come from the environment.
func Default() Config {
	return Config{
		Environment: EnvironmentSandbox,
		APIVersion:  "2025-04-01",
		Host:        "127.0.0.1",
		Port:        8001,
		Timeout:     30 * time.Second,
	}
}

// Load builds the effective configuration: defaults, then the environment.
// A .env file in the working directory is honored if present.
func Load() (Config, error) {
	return LoadFromFile("")
}

// LoadFromFile is Load with an optional YAML settings file applied between
// defaults and environment variables. Environment variables always win.
func LoadFromFile(path string) (Config, error) {
	// Populate the process environment from .env before reading it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyFile merges the YAML settings file at path into cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Host != nil {
		cfg.Host = *fc.Host
	}
	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.APIVersion != nil {
		cfg.APIVersion = *fc.APIVersion
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file %s: %w", path, err)
		}
		cfg.Timeout = d
	}

	return nil
}

// Validate checks that the configuration is complete and consistent.
// A missing credential is startup-fatal: the caller is expected to refuse
// to start rather than serve tools that cannot authenticate.
func (c Config) Validate() error {
	for _, cred := range []struct {
		value    string
		variable string
	}{
		{c.MerchantID, "BRAINTREE_MERCHANT_ID"},
		{c.PublicKey, "BRAINTREE_PUBLIC_KEY"},
		{c.PrivateKey, "BRAINTREE_PRIVATE_KEY"},
	} {
		if cred.value == "" {
			return &MissingCredentialError{Variable: cred.variable}
		}
	}

	if c.Environment != EnvironmentSandbox && c.Environment != EnvironmentProduction {
		return &InvalidEnvironmentError{Value: c.Environment}
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %v: must be positive", c.Timeout)
	}

	return nil
}

// Endpoint returns the Braintree GraphQL URL for the configured environment.
func (c Config) Endpoint() string {
	if c.GraphQLURL != "" {
		return c.GraphQLURL
	}
	if c.Environment == EnvironmentProduction {
		return ProductionEndpoint
	}
	return SandboxEndpoint
}

// ListenAddr returns the host:port the network transports bind to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
