package middleware

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/treinofacil/trainsheet-api/internal/ratelimit"
)

// RateLimit enforces the given preset against the in-process store.
//
// A misconfigured preset fails open: a bad policy must not lock out all
// traffic, so the error is logged and the request passes. Flip this to
// fail-closed before reusing the middleware somewhere security-critical.
func RateLimit(store *ratelimit.Store, preset ratelimit.Preset) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := ClientIdentifier(c)

		result, err := store.Check(preset.Max, preset.Window, identifier)
		if err != nil {
			log.Printf("rate limit check failed (%s preset, id %q): %v", preset.Name, identifier, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", preset.Max))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", result.ResetTime.UTC().Format(time.RFC3339))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetTime).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"data":    nil,
				"error":   "Rate limit exceeded. Try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClientIdentifier derives the rate-limit key: authenticated user id first,
// then the first X-Forwarded-For address, then the peer address.
//
// Only the first forwarded address is used and it is not validated against
// trusted proxies, so a client can spoof its key. Known weakness; do not
// reuse this for anything security-sensitive.
func ClientIdentifier(c *gin.Context) string {
	if userID := c.GetString("user_id"); userID != "" {
		return "user:" + userID
	}

	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return "ip:" + first
		}
	}

	if addr := c.Request.RemoteAddr; addr != "" {
		if host, _, err := net.SplitHostPort(addr); err == nil {
			return "ip:" + host
		}
		return "ip:" + addr
	}

	return "ip:unknown"
}
