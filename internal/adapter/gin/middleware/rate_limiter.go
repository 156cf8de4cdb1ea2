package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"simple-crud-api/pkg/i18n"
	"simple-crud-api/pkg/logger"
)

// RateLimitConfig configures the token bucket
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstCapacity     int
}

// Token Bucket algorithm implemented in Lua for atomicity
// Data structure: {last_refill_time, current_tokens}
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])         -- tokens per second
	local capacity = tonumber(ARGV[2])     -- max tokens in bucket
	local now = tonumber(ARGV[3])          -- current timestamp
	local requested = tonumber(ARGV[4])    -- tokens requested (always 1)

	-- Get current bucket state
	local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
	local last_refill = tonumber(bucket[1]) or now
	local tokens = tonumber(bucket[2]) or capacity

	-- Calculate tokens to add based on elapsed time
	local elapsed = math.max(0, now - last_refill)
	tokens = math.min(capacity, tokens + elapsed * rate)

	local allowed = 0
	if tokens >= requested then
		tokens = tokens - requested
		allowed = 1
	end

	redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
	redis.call('EXPIRE', key, 60)  -- Keep bucket for 60 seconds
	return allowed
`)

// RateLimiter returns a Gin middleware for rate limiting using the Token Bucket algorithm.
// Buckets are kept per method, path and client IP. Redis errors let the request through.
func RateLimiter(cfg RateLimitConfig, rdb *redis.Client, tr *i18n.Translator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:tb:%s:%s:%s", c.Request.Method, c.Request.URL.Path, c.ClientIP())

		serverTime, err := rdb.Time(ctx).Result()
		if err != nil {
			logger.WithContext(ctx, log).Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		now := float64(serverTime.UnixMicro()) / 1e6

		allowed, err := tokenBucket.Run(ctx, rdb, []string{key},
			cfg.RequestsPerSecond,
			cfg.BurstCapacity,
			now,
			1, // Always request 1 token
		).Int64()
		if err != nil {
			logger.WithContext(ctx, log).Warn("rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		if allowed == 0 {
			logger.WithContext(ctx, log).Warn("rate limit exceeded", zap.String("key", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": tr.T(i18n.RateLimitTitle),
				"message": tr.T(i18n.RateLimitDetail,
					strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 2, 64),
					strconv.Itoa(cfg.BurstCapacity)),
			})
			return
		}

		c.Next()
	}
}
