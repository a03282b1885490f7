package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CronAuth guards the cron trigger endpoints with a shared bearer secret.
// These endpoints are called by external schedulers, not by logged-in users,
// so they bypass JWT auth entirely. An empty secret disables the endpoints.
func CronAuth(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Not found",
				},
			})
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		token := strings.TrimPrefix(authHeader, BearerPrefix)
		if authHeader == "" || token == authHeader ||
			subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			if logger != nil {
				logger.Warn("Cron endpoint rejected",
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
				)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid cron secret",
				},
			})
			return
		}

		c.Next()
	}
}
