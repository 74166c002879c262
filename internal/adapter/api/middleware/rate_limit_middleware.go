package middleware

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/infrastructure/ratelimit"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/response"
)

// RateLimit throttles action per user, falling back to the client IP for
// anonymous callers.
func RateLimit(rl *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if user := CurrentUser(c); user != nil {
				key = user.ID
			}

			allowed, retryAfter := rl.Allow(key, action)
			if !allowed {
				logger.Warn("RATE LIMIT: %s blocked on %s (retry in %v)", key, action, retryAfter)
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", retryAfter))
			}

			return next(c)
		}
	}
}
