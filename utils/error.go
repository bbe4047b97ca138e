package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed API call. Clients read Detail and fall
// back to the status text when the body is not JSON.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Detail: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, detail string) {
	Logger := GetLogger()
	if status >= http.StatusInternalServerError {
		Logger.Error(detail, zap.Int("status", status), zap.String("path", c.Request.URL.Path))
	} else {
		Logger.Warn(detail, zap.Int("status", status), zap.String("path", c.Request.URL.Path))
	}
	c.JSON(status, ErrorResponse{Detail: detail})
}
