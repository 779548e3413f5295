package statusapi

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs each request's method, path, status and
// latency.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fmt.Printf("%d | %s | %s %s | %v\n",
			c.Writer.Status(), c.ClientIP(), c.Request.Method, c.Request.URL.Path, time.Since(start))
	}
}

// ErrorResponse is the standard shape for a non-2xx response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
