package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// rateLimitWindow is the fixed window over which requests are counted.
const rateLimitWindow = time.Minute

// RateLimiter provides per-client rate limiting over a fixed window,
// backed by Redis so limits hold across server replicas.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a rate limiter using the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow counts a request for clientID and reports whether it is within
// limitPerMinute. Redis failures fail open: an unreachable limiter
// should not take the API down with it.
func (rl *RateLimiter) Allow(ctx context.Context, clientID string, limitPerMinute int) bool {
	if limitPerMinute <= 0 {
		return true
	}

	key := fmt.Sprintf("ratelimit:%s", clientID)

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		// First request in the window starts the clock.
		rl.client.Expire(ctx, key, rateLimitWindow)
	}

	return count <= int64(limitPerMinute)
}
