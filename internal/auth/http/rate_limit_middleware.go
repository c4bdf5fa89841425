package http

import (
	"log/slog"
	"math"
	"net/http"
	"net/netip"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/staffdocs/internal/httputil"
	"github.com/allisson/staffdocs/internal/ratelimit"
)

// FixedWindowRateLimitMiddleware enforces a fixed-window per-IP limit on an
// unauthenticated auth route. Login and refresh carry separate limiters so a
// burst of refreshes cannot lock a user out of logging in.
//
// The counter key is "route:ip". IPv6 addresses are canonicalized so textual
// variants of the same address share a counter; IPv4-mapped IPv6 addresses
// collapse to their IPv4 form.
//
// Returns 429 with a RATE_LIMIT_EXCEEDED body and a Retry-After header when
// the window is exhausted. Rejected requests do not extend the window. A 200
// response clears the key's window so earlier failed attempts no longer count
// against the caller.
func FixedWindowRateLimitMiddleware(
	route string,
	limiter *ratelimit.Limiter,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := route + ":" + canonicalClientIP(c)

		result := limiter.Check(key)
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))

			logger.Debug("rate limit exceeded",
				slog.String("route", route),
				slog.String("client_ip", c.ClientIP()),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:      "too many requests",
				Message:    "Too many attempts from this address. Please retry later.",
				Code:       httputil.CodeRateLimitExceeded,
				RetryAfter: retryAfter,
			})
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			limiter.Reset(key)
		}
	}
}

// canonicalClientIP normalizes the client IP so equivalent textual forms map
// to the same rate-limit key.
func canonicalClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ip
	}
	return addr.Unmap().String()
}
