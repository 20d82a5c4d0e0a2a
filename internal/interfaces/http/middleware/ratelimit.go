package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina/internal/infrastructure/ratelimit"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/utils"
)

// ChatRateLimit throttles the chat send endpoint per user SID using the
// shared sliding-window limiter. A nil limiter disables throttling.
func ChatRateLimit(limiter ratelimit.RateLimiter, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || perMinute <= 0 {
			c.Next()
			return
		}

		userSID := c.Param("sid")
		if userSID == "" {
			c.Next()
			return
		}

		allowed, err := limiter.Allow("chat:"+userSID, ratelimit.RateLimitConfig{
			RequestsPerMinute: perMinute,
		})
		if err != nil {
			// If the limiter backend is unavailable, allow the request to
			// avoid blocking all traffic.
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests,
				string(errors.ErrorTypeValidation), "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
