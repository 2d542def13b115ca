// Package auth protects the HTTP surface of the translation server with
// API keys, JWT bearer tokens and per-client rate limiting.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nlorm/nlorm/internal/config"
)

// Manager authenticates requests against the configured credentials.
type Manager struct {
	cfg     config.AuthConfig
	limiter *RateLimiter
}

// NewManager creates an auth manager. The limiter may be nil, in which
// case rate limiting is disabled.
func NewManager(cfg config.AuthConfig, limiter *RateLimiter) *Manager {
	return &Manager{
		cfg:     cfg,
		limiter: limiter,
	}
}

// Login verifies the configured username/password pair and issues a
// signed JWT. The stored password is a bcrypt hash.
func (m *Manager) Login(username, password string) (string, error) {
	if m.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT login is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(m.cfg.Username)) != 1 {
		return "", fmt.Errorf("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.cfg.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid username or password")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.JWTExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a JWT, returning the subject.
func (m *Manager) ValidateToken(tokenString string) (string, error) {
	if m.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT login is not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.JWTSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

// ValidateAPIKey checks a presented key against the configured set.
func (m *Manager) ValidateAPIKey(key string) bool {
	if key == "" {
		return false
	}
	for _, configured := range m.cfg.APIKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(configured)) == 1 {
			return true
		}
	}
	return false
}

// HashPassword produces a bcrypt hash suitable for AUTH_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
