package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"motoride/internal/infrastructure/ratelimit"
	"motoride/pkg/errors"
	"motoride/pkg/logger"
	"motoride/pkg/response"
)

// RateLimit refuses requests from a client IP once its bucket is empty, answering 429 with
// a Retry-After header.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, retryAfter := limiter.Allow(ip)
			if !ok {
				logger.Warn("RATE LIMIT: blocked request from %s (retry in %s)", ip, retryAfter)
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded. Please try again later.", nil))
			}
			return next(c)
		}
	}
}
