package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"civictrack/internal/cache"
	"civictrack/internal/errors"
)

const rateLimitWindow = 24 * time.Hour

// CreateRateLimit caps issue submissions per client IP per 24h window using a
// redis counter. A limit of zero disables the middleware entirely, and an
// unreachable redis fails open: reporting an issue must not depend on the
// cache being up.
func CreateRateLimit(cacheClient *cache.Client, limit int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limit <= 0 {
				return next(c)
			}

			ctx := c.Request().Context()
			key := "create_limit:" + c.RealIP()

			count, err := cacheClient.Incr(ctx, key)
			if err != nil {
				return next(c)
			}
			if count == 1 {
				_ = cacheClient.Expire(ctx, key, rateLimitWindow)
			}

			if count > int64(limit) {
				retryAfter, _ := cacheClient.TTL(ctx, key)
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
				return c.JSON(http.StatusTooManyRequests, errors.ErrorResponse{
					Error: "rate limit exceeded",
					Code:  "RATE_LIMITED",
				})
			}

			return next(c)
		}
	}
}
