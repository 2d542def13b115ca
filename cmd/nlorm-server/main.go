package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/nlorm/nlorm/internal/auth"
	"github.com/nlorm/nlorm/internal/config"
	"github.com/nlorm/nlorm/internal/observability"
	"github.com/nlorm/nlorm/internal/server"
	"github.com/nlorm/nlorm/llm"
)

func main() {
	ctx := context.Background()

	cfg := config.NewDefaultLoader().MustLoad(ctx)
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	logger := observability.NewLogger("nlorm-server")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	var limiter *auth.RateLimiter
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn(ctx, "Redis unreachable, rate limiting disabled", map[string]interface{}{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
	} else {
		limiter = auth.NewRateLimiter(rdb)
	}

	authManager := auth.NewManager(cfg.Auth, limiter)
	client := llm.NewOllamaClient(cfg.Ollama.BaseURL, cfg.Ollama.Timeout)

	handler := server.NewHandler(client, authManager, cfg, logger)
	router := handler.SetupRoutes()

	logger.Info(ctx, "Translation server starting", map[string]interface{}{
		"port":   cfg.Server.Port,
		"ollama": cfg.Ollama.BaseURL,
		"model":  cfg.Ollama.Model,
	})

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Error(ctx, "Failed to start server", err, nil)
		log.Fatal("Failed to start server: ", err)
	}
}
