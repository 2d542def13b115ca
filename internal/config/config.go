package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration for the translation server.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Ollama chat-endpoint configuration
	Ollama OllamaConfig

	// Translation defaults
	Translate TranslateConfig

	// Authentication configuration
	Auth AuthConfig

	// Redis configuration (rate limiter backend)
	Redis RedisConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string
}

// OllamaConfig holds the chat endpoint location and model selection.
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// TranslateConfig holds per-request translation defaults.
type TranslateConfig struct {
	Temperature    float64
	MaxTokens      int
	SkipValidation bool
}

// AuthConfig holds authentication and rate-limit configuration.
type AuthConfig struct {
	JWTSecret      string
	JWTExpiry      time.Duration
	Username       string
	PasswordHash   string
	APIKeys        []string
	AllowAnonymous bool
	RateLimit      int
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Loader handles loading configuration from various sources.
type Loader struct {
	provider SecretProvider
}

// NewLoader creates a new configuration loader with the given provider.
func NewLoader(provider SecretProvider) *Loader {
	return &Loader{
		provider: provider,
	}
}

// NewDefaultLoader creates a loader with the default provider chain:
// 1. File-based secrets (if available)
// 2. Environment variables (fallback)
func NewDefaultLoader() *Loader {
	return &Loader{
		provider: NewChainProvider(
			NewFileProvider("/var/secrets"),
			NewEnvProvider(),
		),
	}
}

// Load loads the complete configuration.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	cfg := &Config{}

	cfg.Server = ServerConfig{
		Port:    l.getString(ctx, "PORT", "8080"),
		GinMode: l.getString(ctx, "GIN_MODE", "debug"),
	}

	cfg.Ollama = OllamaConfig{
		BaseURL: l.getString(ctx, "OLLAMA_BASE_URL", "http://localhost:11434"),
		Model:   l.getString(ctx, "OLLAMA_MODEL", "mistral:instruct"),
		Timeout: l.getDuration(ctx, "OLLAMA_TIMEOUT", 120*time.Second),
	}

	cfg.Translate = TranslateConfig{
		Temperature:    l.getFloat(ctx, "TRANSLATE_TEMPERATURE", 0.2),
		MaxTokens:      l.getInt(ctx, "TRANSLATE_MAX_TOKENS", 500),
		SkipValidation: l.getBool(ctx, "TRANSLATE_SKIP_VALIDATION", false),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:      l.getString(ctx, "JWT_SECRET", ""),
		JWTExpiry:      l.getDuration(ctx, "JWT_EXPIRY", 24*time.Hour),
		Username:       l.getString(ctx, "AUTH_USERNAME", ""),
		PasswordHash:   l.getString(ctx, "AUTH_PASSWORD_HASH", ""),
		APIKeys:        l.getSlice(ctx, "API_KEYS", []string{}),
		AllowAnonymous: l.getBool(ctx, "ALLOW_ANONYMOUS", false),
		RateLimit:      l.getInt(ctx, "RATE_LIMIT", 100),
	}

	cfg.Redis = RedisConfig{
		Addr:     l.getString(ctx, "REDIS_ADDR", "localhost:6379"),
		Password: l.getString(ctx, "REDIS_PASSWORD", ""),
		DB:       l.getInt(ctx, "REDIS_DB", 0),
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error. Useful for
// application startup.
func (l *Loader) MustLoad(ctx context.Context) *Config {
	cfg, err := l.Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Helper methods for retrieving and parsing configuration values

func (l *Loader) getString(ctx context.Context, key, defaultValue string) string {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}
	return value
}

func (l *Loader) getBool(ctx context.Context, key string, defaultValue bool) bool {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func (l *Loader) getInt(ctx context.Context, key string, defaultValue int) int {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

func (l *Loader) getFloat(ctx context.Context, key string, defaultValue float64) float64 {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func (l *Loader) getDuration(ctx context.Context, key string, defaultValue time.Duration) time.Duration {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func (l *Loader) getSlice(ctx context.Context, key string, defaultValue []string) []string {
	value, err := l.provider.GetSecret(ctx, key)
	if err != nil || value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}
	return result
}
