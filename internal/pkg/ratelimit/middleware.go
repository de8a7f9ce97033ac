package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware limits requests per client IP
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return keyedMiddleware(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// UserBasedMiddleware limits requests per authenticated user, falling back
// to the client IP for anonymous requests
func UserBasedMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return keyedMiddleware(limiter, func(c *gin.Context) string {
		if userID := c.GetString("userID"); userID != "" {
			return userID
		}
		return c.ClientIP()
	})
}

func keyedMiddleware(limiter *RateLimiter, keyFunc func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		if !limiter.Allow(key) {
			resetTime := limiter.ResetTime(key)
			setLimitHeaders(c, limiter, 0, resetTime)
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Rate limit exceeded. Try again later.",
				"reset_time": resetTime.Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		setLimitHeaders(c, limiter, limiter.Remaining(key), limiter.ResetTime(key))
		c.Next()
	}
}

func setLimitHeaders(c *gin.Context, limiter *RateLimiter, remaining int, reset time.Time) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", reset.Format(time.RFC3339))
}
