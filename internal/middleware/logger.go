package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Writes one access-log line per request, tagged with the request id so it
// can be correlated with handler logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Printf("[%s] %s %s -> %d in %v from %s",
			c.GetString("request_id"),
			method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
