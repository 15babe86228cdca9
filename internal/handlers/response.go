package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// StatusSuccess is the value of the envelope "status" field on success.
const StatusSuccess = "success"

// respondSuccess writes payload wrapped in the success envelope.
func respondSuccess(c *gin.Context, code int, message string, payload gin.H) {
	body := gin.H{"status": StatusSuccess}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

// currentSession returns the request session when the sessions middleware
// is installed.
func currentSession(c *gin.Context) (sessions.Session, bool) {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil, false
	}
	return sessions.Default(c), true
}
