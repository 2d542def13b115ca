package config

import (
	"context"
	"fmt"
)

// SecretProvider is one source of configuration values. The loader only
// ever asks two questions of a source: is it usable in this deployment,
// and what is the value for a key.
type SecretProvider interface {
	// GetSecret retrieves a value by key. A missing key may surface as an
	// error or as an empty value; the loader treats both as absent.
	GetSecret(ctx context.Context, key string) (string, error)

	// IsAvailable reports whether this source is usable at all (e.g. the
	// secret mount exists). Unavailable sources are skipped entirely.
	IsAvailable(ctx context.Context) bool
}

// ChainProvider consults sources in order and returns the first value
// found, so a mounted secret shadows an environment variable for the
// same key.
type ChainProvider struct {
	providers []SecretProvider
}

// NewChainProvider creates a chain over the given sources.
func NewChainProvider(providers ...SecretProvider) *ChainProvider {
	return &ChainProvider{providers: providers}
}

// GetSecret returns the first non-empty value any available source has
// for the key.
func (c *ChainProvider) GetSecret(ctx context.Context, key string) (string, error) {
	var lastErr error
	for _, p := range c.providers {
		if !p.IsAvailable(ctx) {
			continue
		}
		value, err := p.GetSecret(ctx, key)
		if err != nil {
			lastErr = err
			continue
		}
		if value != "" {
			return value, nil
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("no value for %s, last source error: %w", key, lastErr)
	}
	return "", fmt.Errorf("no value for %s in any source", key)
}

// IsAvailable reports whether any source in the chain is usable.
func (c *ChainProvider) IsAvailable(ctx context.Context) bool {
	for _, p := range c.providers {
		if p.IsAvailable(ctx) {
			return true
		}
	}
	return false
}
