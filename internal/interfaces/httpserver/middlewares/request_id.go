package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader doubles as the inbound override and the response header.
const requestIDHeader = "X-Request-Id"

// RequestID ensures every request carries a request id, minting one when
// the client did not supply it. The id is echoed on the response and kept
// in the gin context for the logging middleware.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(requestIDHeader, requestID)
		}
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Set(requestIDHeader, requestID)
		c.Next()
	}
}

// RequestIDFromContext returns the id assigned to the current request,
// or empty when the middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDHeader)
}
