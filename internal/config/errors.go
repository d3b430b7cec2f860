package config

import "fmt"

// MissingCredentialError indicates that a required Braintree credential was
// not present in the environment. It names the exact variable so the startup
// diagnostic tells the operator what to set.
type MissingCredentialError struct {
	Variable string
}

// Error implements the error interface.
func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing Braintree credential: %s is not set", e.Variable)
}

// InvalidEnvironmentError indicates that BRAINTREE_ENVIRONMENT holds a value
// other than the two accepted selectors.
type InvalidEnvironmentError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidEnvironmentError) Error() string {
	return fmt.Sprintf("invalid Braintree environment %q: must be %q or %q",
		e.Value, EnvironmentSandbox, EnvironmentProduction)
}
