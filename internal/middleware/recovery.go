package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Converts handler panics into a 500 envelope so a bug in one request
// cannot take the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[%s] panic recovered: %v", c.GetString("request_id"), err)

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"data":    nil,
					"error":   "Internal Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
