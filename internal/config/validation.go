package config

import (
	"fmt"
	"strconv"
)

// Validate checks that the loaded configuration is internally consistent.
// It is called once at startup so misconfiguration fails fast instead of
// surfacing on the first request.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port %q: %w", c.Server.Port, err)
	}

	if c.Ollama.BaseURL == "" {
		return fmt.Errorf("ollama base URL must not be empty")
	}
	if c.Ollama.Model == "" {
		return fmt.Errorf("ollama model must not be empty")
	}

	if c.Translate.Temperature < 0 || c.Translate.Temperature > 2 {
		return fmt.Errorf("translate temperature %v out of range [0, 2]", c.Translate.Temperature)
	}
	if c.Translate.MaxTokens <= 0 {
		return fmt.Errorf("translate max tokens must be positive, got %d", c.Translate.MaxTokens)
	}

	if !c.Auth.AllowAnonymous {
		if c.Auth.JWTSecret == "" && len(c.Auth.APIKeys) == 0 {
			return fmt.Errorf("authentication enabled but neither JWT_SECRET nor API_KEYS configured")
		}
		if c.Auth.JWTSecret != "" && (c.Auth.Username == "" || c.Auth.PasswordHash == "") {
			return fmt.Errorf("JWT login enabled but AUTH_USERNAME or AUTH_PASSWORD_HASH missing")
		}
	}

	if c.Auth.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.Auth.RateLimit)
	}

	return nil
}
