package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// Counter counts hits on a key within a fixed window.
type Counter interface {
	// Hit increments key and returns the new count and the time left in the
	// window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisCounter is a fixed-window Counter backed by INCR and EXPIRE.
type RedisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter creates a Redis-backed counter.
func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// Set expiry on first request in the window
	if count == 1 {
		if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, window, err
		}
	}

	ttl, err := r.rdb.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return count, ttl, nil
}

// RateLimiter throttles inbound requests per client IP.
type RateLimiter struct {
	counter Counter
	maxReqs int
	window  time.Duration
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(counter Counter, maxReqs, windowSec int) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		maxReqs: maxReqs,
		window:  time.Duration(windowSec) * time.Second,
	}
}

// Handler returns a Fiber middleware handler for rate limiting. Requests are
// let through when the counter is unavailable.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := "animix:ratelimit:" + c.IP()

		count, ttl, err := rl.counter.Hit(c.Context(), key, rl.window)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err)
			return c.Next()
		}

		reset := int(ttl.Seconds())
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxReqs))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(rl.maxReqs)-count)))
		c.Set("X-RateLimit-Reset", strconv.Itoa(reset))

		if count > int64(rl.maxReqs) {
			c.Set("Retry-After", strconv.Itoa(reset))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "rate limit exceeded",
				"retry_after": reset,
			})
		}

		return c.Next()
	}
}
