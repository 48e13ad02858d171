package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags each request with an ID and logs method, path, status
// and latency once the handler chain finishes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Set("request_id", reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)

		c.Next()

		log.Printf("[%s] %s %s -> %d (%s)",
			reqID, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
