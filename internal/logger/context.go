package logger

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FromGin retrieves the request-scoped logger from the gin context
func FromGin(c *gin.Context) *zap.Logger {
	if value, exists := c.Get(ContextKey); exists {
		if logger, ok := value.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}
