package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"todovault/todo-service/internal/api/response"
)

// RateLimitWindow is the fixed window the auth limiter counts over.
const RateLimitWindow = time.Minute

// RateLimit is a fixed-window per-IP limiter backed by Redis, meant for the
// credential endpoints. Redis being unreachable fails open; rejecting logins
// because the limiter is down would be worse than not limiting.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:auth:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			response.Error(c, response.NewAppError(429, "RATE_LIMITED", "Too many requests", nil))
			return
		}

		c.Next()
	}
}
