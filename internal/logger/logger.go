package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey is the gin context key holding the request-scoped logger.
const ContextKey = "logger"

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Environment string
	ServiceName string
}

var log *zap.Logger

// InitLogger builds the global logger. Production uses JSON output with
// ISO8601 timestamps; everything else gets the colored development encoder.
func InitLogger(config *LogConfig) error {
	level := ParseLevel(config.Level)
	fields := zap.Fields(
		zap.String("service", config.ServiceName),
		zap.String("environment", config.Environment),
	)

	var (
		built *zap.Logger
		err   error
	)
	if config.Environment == "production" {
		prodConfig := zap.NewProductionConfig()
		prodConfig.Level = zap.NewAtomicLevelAt(level)
		prodConfig.EncoderConfig.TimeKey = "timestamp"
		prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		built, err = prodConfig.Build(fields)
	} else {
		devConfig := zap.NewDevelopmentConfig()
		devConfig.Level = zap.NewAtomicLevelAt(level)
		devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		built, err = devConfig.Build(fields)
	}
	if err != nil {
		return err
	}

	log = built
	zap.ReplaceGlobals(log)
	return nil
}

// ParseLevel maps a config string onto a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger, or zap's global no-op logger when
// InitLogger has not run (tests).
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.L()
	}
	return log
}

// Sync flushes buffered log entries.
func Sync() {
	_ = GetLogger().Sync()
}

// Middleware logs one structured line per HTTP request and exposes a
// request-scoped logger through FromGin.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = c.Writer.Header().Get("X-Request-ID")
		}

		ctxLogger := GetLogger().With(zap.String("request_id", requestID))
		c.Set(ContextKey, ctxLogger)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			ctxLogger.Error("HTTP Request", fields...)
		case status >= 400:
			ctxLogger.Warn("HTTP Request", fields...)
		default:
			ctxLogger.Info("HTTP Request", fields...)
		}
	}
}
