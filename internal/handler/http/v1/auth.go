package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iIonel/EventReport/internal/config"
	"github.com/sirupsen/logrus"
)

// reporterIDKey - ключ gin-контекста, под которым лежит автор запроса
const reporterIDKey = "reporter_id"

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		reporter, ok := cfg.APIKeys[apiKey]
		if !ok {
			log.WithField("path", c.FullPath()).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Set(reporterIDKey, reporter)
		c.Next()
	}
}

// reporterID возвращает автора, определенного по API-ключу
func reporterID(c *gin.Context) string {
	if v := c.GetString(reporterIDKey); v != "" {
		return v
	}
	return config.AnonymousReporter
}
