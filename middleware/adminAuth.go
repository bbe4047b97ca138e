package middleware

import (
	"net/http"
	"strings"

	"groupcal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthAdminMiddleware admits requests carrying a valid admin token signed with secret.
func JWTAuthAdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ValidateAdminToken(secret, tokenString)
		if err != nil {
			zap.L().Warn("Rejected admin token", zap.String("ip", getClientIP(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized admin access"})
			return
		}

		c.Set("adminSubject", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
