package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestInitLogger_Development(t *testing.T) {
	previous := log
	t.Cleanup(func() { log = previous })

	require.NoError(t, InitLogger(&LogConfig{Level: "debug", Environment: "development", ServiceName: "test"}))
	assert.NotNil(t, GetLogger())
}

func TestMiddleware_LogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, observed := observer.New(zapcore.InfoLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) {
		assert.NotNil(t, FromGin(c))
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := observed.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "/ping", fields["path"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
}
