package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ChatchaiTritham/EdcellenceEdPEx/internal/errors"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/monitoring"
)

// Middleware creates a Gin middleware enforcing the per-IP limit on
// every request. Blocked requests get standard rate limit headers and a
// structured 429 body.
func Middleware(limiter *RateLimiter, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		result, err := limiter.AllowIP(c.Request.Context(), ip)
		if err != nil {
			// Never reject a request because the limiter itself broke.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			if metrics != nil {
				metrics.IncrementRateLimitBlock()
			}
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))

			appErr := apperrors.NewRateLimitError(fmt.Sprintf("%.0fs", result.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       appErr.Error(),
				"retry_after": result.RetryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// StatusHandler returns a handler reporting the limiter's current state.
func StatusHandler(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, limiter.GetStats())
	}
}
