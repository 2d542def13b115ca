package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlorm/nlorm/internal/config"
)

func testRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("user")})
	})
	return r
}

func TestMiddlewareRejectsUnauthenticated(t *testing.T) {
	m := NewManager(testAuthConfig(t), nil)
	r := testRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_AUTHENTICATED")
}

func TestMiddlewareAcceptsAPIKey(t *testing.T) {
	m := NewManager(testAuthConfig(t), nil)
	r := testRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(APIKeyHeader, "key-alpha")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareRejectsWrongAPIKey(t *testing.T) {
	m := NewManager(testAuthConfig(t), nil)
	r := testRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(APIKeyHeader, "key-gamma")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	m := NewManager(testAuthConfig(t), nil)
	token, err := m.Login("admin", "correct horse")
	require.NoError(t, err)

	r := testRouter(m)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestMiddlewareAllowAnonymous(t *testing.T) {
	cfg := config.AuthConfig{AllowAnonymous: true}
	m := NewManager(cfg, nil)
	r := testRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareRateLimit(t *testing.T) {
	rl, _ := testRateLimiter(t)
	cfg := config.AuthConfig{
		APIKeys:   []string{"key-alpha"},
		RateLimit: 2,
		JWTExpiry: time.Hour,
	}
	m := NewManager(cfg, rl)
	r := testRouter(m)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(APIKeyHeader, "key-alpha")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(APIKeyHeader, "key-alpha")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
}
