package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/services"
)

type stubAuthenticator struct {
	keys map[string]*models.User
	err  error
}

func (s stubAuthenticator) Authenticate(key string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.keys[key]
	if !ok {
		return nil, services.ErrInvalidToken
	}
	return user, nil
}

func newAuthRouter(auth TokenAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": userID, "token": GetTokenKey(c)})
	})
	return r
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		key     string
		problem string
	}{
		{name: "empty", header: ""},
		{name: "bearer", header: "Bearer abc123", key: "abc123"},
		{name: "token scheme", header: "Token abc123", key: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", key: "abc123"},
		{name: "other scheme ignored", header: "Basic dXNlcjpwYXNz"},
		{name: "missing key", header: "Bearer", problem: msgNoTokenProvided},
		{name: "key with spaces", header: "Token abc 123", problem: msgTokenHasSpaces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, problem := tokenFromHeader(tt.header)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.problem, problem)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	auth := stubAuthenticator{keys: map[string]*models.User{
		"good": {ID: 7, Email: "ada@example.com"},
	}}
	r := newAuthRouter(auth)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid bearer", header: "Bearer good", status: http.StatusOK},
		{name: "valid token scheme", header: "Token good", status: http.StatusOK},
		{name: "unknown key", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "no credentials", header: "", status: http.StatusUnauthorized},
		{name: "malformed header", header: "Bearer", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":7,"token":"good"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}

func TestRequireAuth_BackendFailure(t *testing.T) {
	r := newAuthRouter(stubAuthenticator{err: errors.New("database unavailable")})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
