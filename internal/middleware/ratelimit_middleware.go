package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/errors"
	"golang.org/x/time/rate"
)

// RateLimit returns a middleware enforcing a global token-bucket limit.
// It fronts the login endpoint to slow credential stuffing.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(r, burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			log := GetLoggerFromContext(c)
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			errors.RespondWithError(c, http.StatusTooManyRequests, errors.RateLimited, "Too many requests. Please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
