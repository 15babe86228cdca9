package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/constants"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/metrics"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/services"
	"go.uber.org/zap"
)

// TokenAuthenticator resolves a token key to its user.
type TokenAuthenticator interface {
	Authenticate(key string) (*models.User, error)
}

// RequireAuth authenticates the caller with an "Authorization: Bearer <key>"
// or "Token <key>" header. Without a header the token key stored in the
// session at login is used instead, so revoked tokens fail either way.
func RequireAuth(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, problem := tokenFromHeader(c.GetHeader("Authorization"))
		if problem != "" {
			metrics.RecordAuthError("invalid_header")
			apierrors.Unauthorized(c, problem)
			return
		}
		if key == "" {
			key = tokenFromSession(c)
		}
		if key == "" {
			metrics.RecordAuthError("missing_credentials")
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := auth.Authenticate(key)
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				metrics.RecordAuthError("invalid_token")
				apierrors.Unauthorized(c, "Invalid token.")
				return
			}
			logger.FromGin(c).Error("Failed to authenticate token", zap.Error(err))
			apierrors.InternalError(c, "")
			return
		}

		// Store the caller in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyTokenKey, key)
		c.Next()
	}
}

const (
	msgNoTokenProvided = "Invalid token header. No credentials provided."
	msgTokenHasSpaces  = "Invalid token header. Token string should not contain spaces."
)

// tokenFromHeader returns the key of a Bearer or Token header, or a message
// describing why the header is malformed. Other schemes are ignored.
func tokenFromHeader(header string) (key string, problem string) {
	parts := strings.Fields(header)
	if len(parts) == 0 {
		return "", ""
	}

	scheme := strings.ToLower(parts[0])
	if scheme != "bearer" && scheme != "token" {
		return "", ""
	}

	switch len(parts) {
	case 1:
		return "", msgNoTokenProvided
	case 2:
		return parts[1], ""
	default:
		return "", msgTokenHasSpaces
	}
}

func tokenFromSession(c *gin.Context) string {
	// sessions.Default panics when the sessions middleware is not installed
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return ""
	}

	key, _ := sessions.Default(c).Get(constants.SessionKeyToken).(string)
	return key
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// GetTokenKey retrieves the token key the caller authenticated with
func GetTokenKey(c *gin.Context) string {
	return c.GetString(constants.ContextKeyTokenKey)
}
