package config

import (
	"context"
	"os"
)

// EnvProvider reads values from environment variables. It sits last in
// the default chain as the source that is always present.
type EnvProvider struct{}

// NewEnvProvider creates an environment variable provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// GetSecret returns the variable's value; unset and empty are
// indistinguishable here, which the loader already treats as absent.
func (e *EnvProvider) GetSecret(ctx context.Context, key string) (string, error) {
	return os.Getenv(key), nil
}

// IsAvailable always reports true.
func (e *EnvProvider) IsAvailable(ctx context.Context) bool {
	return true
}
