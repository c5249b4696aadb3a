package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"tourboard/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware applies rate limiting per client IP, categorized by route.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis trouble should not take the API down
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	case strings.Contains(path, "/accounts/register"),
		strings.Contains(path, "/accounts/login"),
		strings.Contains(path, "/accounts/refresh"):
		return RateLimitTypeAuth

	case strings.Contains(path, "/bids"),
		strings.Contains(path, "/shows"):
		return RateLimitTypeBid

	case strings.Contains(path, "/requests/active"),
		strings.Contains(path, "/venues"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}
