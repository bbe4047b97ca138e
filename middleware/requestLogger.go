package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLoggerMiddleware tags each request with an id and stores a logger carrying it
// under the "logger" context key.
func RequestLoggerMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(requestIDHeader, id)
		c.Set("requestID", id)
		c.Set("logger", base.With(zap.String("requestID", id), zap.String("path", c.Request.URL.Path)))
		c.Next()
	}
}
