package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"simple-crud-api/pkg/i18n"
	"simple-crud-api/pkg/logger"
)

// Recovery turns panics into a generic 500 response and logs the stack.
func Recovery(log *zap.Logger, tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(c.Request.Context(), log).Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   tr.T(i18n.InternalErrorTitle),
					"message": tr.T(i18n.InternalErrorDetail),
				})
			}
		}()
		c.Next()
	}
}
