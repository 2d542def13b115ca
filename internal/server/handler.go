// Package server exposes the translation library over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nlorm/nlorm"
	"github.com/nlorm/nlorm/internal/auth"
	"github.com/nlorm/nlorm/internal/config"
	"github.com/nlorm/nlorm/internal/observability"
	"github.com/nlorm/nlorm/llm"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	client llm.Client
	auth   *auth.Manager
	cfg    *config.Config
	logger *observability.Logger
}

// NewHandler creates a handler serving translations through the given
// chat client.
func NewHandler(client llm.Client, authManager *auth.Manager, cfg *config.Config, logger *observability.Logger) *Handler {
	return &Handler{
		client: client,
		auth:   authManager,
		cfg:    cfg,
		logger: logger,
	}
}

// SetupRoutes configures the Gin router.
func (h *Handler) SetupRoutes() *gin.Engine {
	r := gin.New()
	r.Use(observability.RecoveryMiddleware(h.logger))
	r.Use(observability.RequestLoggingMiddleware(h.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "nlorm-server",
		})
	})

	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", h.handleLogin)
	}

	api := r.Group("/api/v1")
	api.Use(h.auth.Middleware())
	{
		api.POST("/translate", h.handleTranslate)
		api.POST("/schema", h.handleSchema)
	}

	return r
}

// TranslateRequest is the translate endpoint payload.
type TranslateRequest struct {
	Models []ModelSpec `json:"models" binding:"required"`
	Query  string      `json:"query" binding:"required"`

	// Optional overrides of the server-side defaults. Pointer fields
	// distinguish "not sent" from an explicit zero (a temperature of 0
	// requests fully deterministic decoding).
	Model          string   `json:"model,omitempty"`
	Template       string   `json:"template,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
	MaxTokens      int      `json:"max_tokens,omitempty"`
	SkipValidation *bool    `json:"skip_validation,omitempty"`
}

// TranslateResponse carries the generated query and the schema text that
// was embedded in the prompt.
type TranslateResponse struct {
	Query     string `json:"query"`
	Generated string `json:"generated_query"`
	Schema    string `json:"schema"`
	Model     string `json:"model"`
}

func (h *Handler) handleTranslate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_INPUT", err.Error()))
		return
	}

	models, err := ResolveModels(req.Models)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_INPUT", err.Error()))
		return
	}

	opts := h.translateOptions(&req)
	if req.Template != "" {
		tmpl, err := nlorm.NewPromptTemplate(req.Template)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("INVALID_INPUT", err.Error()))
			return
		}
		opts.Template = tmpl
	}

	generated, err := nlorm.Translate(c.Request.Context(), h.client, models, req.Query, opts)
	if err != nil {
		writeTranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, TranslateResponse{
		Query:     req.Query,
		Generated: generated,
		Schema:    nlorm.Describe(models),
		Model:     opts.Model,
	})
}

// translateOptions merges server defaults with per-request overrides.
func (h *Handler) translateOptions(req *TranslateRequest) nlorm.Options {
	opts := nlorm.Options{
		Model:          h.cfg.Ollama.Model,
		Temperature:    &h.cfg.Translate.Temperature,
		MaxTokens:      h.cfg.Translate.MaxTokens,
		SkipValidation: h.cfg.Translate.SkipValidation,
	}
	if req.Model != "" {
		opts.Model = req.Model
	}
	if req.Temperature != nil {
		opts.Temperature = req.Temperature
	}
	if req.MaxTokens != 0 {
		opts.MaxTokens = req.MaxTokens
	}
	if req.SkipValidation != nil {
		opts.SkipValidation = *req.SkipValidation
	}
	return opts
}

// SchemaRequest is the schema endpoint payload.
type SchemaRequest struct {
	Models []ModelSpec `json:"models" binding:"required"`
}

func (h *Handler) handleSchema(c *gin.Context) {
	var req SchemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_INPUT", err.Error()))
		return
	}

	models, err := ResolveModels(req.Models)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_INPUT", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schema": nlorm.Describe(models),
	})
}

// LoginRequest is the login endpoint payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_INPUT", err.Error()))
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("INVALID_CREDENTIALS", "invalid username or password"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
