package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/template-settings-api/internal/dto"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/services"
)

func TestAuthHandler_Register(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)

	body := jsonBody(t, map[string]string{
		"username":         "ada",
		"email":            "ada@example.com",
		"first_name":       "Ada",
		"last_name":        "Lovelace",
		"phone_number":     "+14155550123",
		"password":         testPassword,
		"password_confirm": testPassword,
	})
	c, w := testContext(http.MethodPost, "/api/auth/register", body, nil, "")

	handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		User    dto.UserDTO `json:"user"`
		Token   string      `json:"token"`
	}
	decode(t, w, &response)
	assert.Equal(t, StatusSuccess, response.Status)
	assert.Equal(t, "User registered successfully", response.Message)
	assert.Equal(t, "ada", response.User.Username)
	assert.Equal(t, "Ada Lovelace", response.User.FullName)
	assert.Len(t, response.Token, 40)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_FieldErrors(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)

	body := jsonBody(t, map[string]string{
		"username":         "ada",
		"email":            "not-an-email",
		"last_name":        "Lovelace",
		"phone_number":     "12",
		"password":         testPassword,
		"password_confirm": testPassword,
	})
	c, w := testContext(http.MethodPost, "/api/auth/register", body, nil, "")

	handler.Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response envelope
	decode(t, w, &response)
	assert.Equal(t, apierrors.StatusError, response.Status)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, response.Code)
	assert.Equal(t, "Registration failed", response.Message)
	assert.Contains(t, response.Errors, "email")
	assert.Contains(t, response.Errors, "first_name")
	assert.Contains(t, response.Errors, "phone_number")

	var users int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestAuthHandler_Register_WhitespaceOnlyFields(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)

	body := jsonBody(t, map[string]string{
		"username":         "   ",
		"email":            "ada@example.com",
		"first_name":       "   ",
		"last_name":        "  ",
		"password":         testPassword,
		"password_confirm": testPassword,
	})
	c, w := testContext(http.MethodPost, "/api/auth/register", body, nil, "")

	handler.Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response envelope
	decode(t, w, &response)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, response.Code)
	assert.Equal(t, []string{services.MsgBlank}, response.Errors["username"])
	assert.Equal(t, []string{services.MsgBlank}, response.Errors["first_name"])
	assert.Equal(t, []string{services.MsgBlank}, response.Errors["last_name"])

	var users int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestAuthHandler_Register_PasswordTooLong(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)

	password := strings.Repeat("Xy7-", 20)
	body := jsonBody(t, map[string]string{
		"username":         "ada",
		"email":            "ada@example.com",
		"first_name":       "Ada",
		"last_name":        "Lovelace",
		"password":         password,
		"password_confirm": password,
	})
	c, w := testContext(http.MethodPost, "/api/auth/register", body, nil, "")

	handler.Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response envelope
	decode(t, w, &response)
	assert.Contains(t, response.Errors, "password")
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)

	body := jsonBody(t, map[string]string{
		"username":         "ada",
		"email":            "ada@example.com",
		"first_name":       "Ada",
		"last_name":        "Lovelace",
		"password":         testPassword,
		"password_confirm": testPassword + "x",
	})
	c, w := testContext(http.MethodPost, "/api/auth/register", body, nil, "")

	handler.Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response envelope
	decode(t, w, &response)
	assert.Equal(t, []string{"Passwords don't match."}, response.Errors["non_field_errors"])
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)
	_, token := env.registerUser(t, "ada")

	body := jsonBody(t, map[string]string{"email": "ada@example.com", "password": testPassword})
	c, w := testContext(http.MethodPost, "/api/auth/login", body, nil, "")

	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status string      `json:"status"`
		User   dto.UserDTO `json:"user"`
		Token  string      `json:"token"`
	}
	decode(t, w, &response)
	assert.Equal(t, token.Key, response.Token)
	assert.NotNil(t, response.User.LastLogin)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)
	env.registerUser(t, "ada")

	body := jsonBody(t, map[string]string{"email": "ada@example.com", "password": "wrong-password"})
	c, w := testContext(http.MethodPost, "/api/auth/login", body, nil, "")

	handler.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response envelope
	decode(t, w, &response)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, response.Code)
	assert.Equal(t, "Invalid email or password.", response.Message)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)
	user, token := env.registerUser(t, "ada")

	c, w := testContext(http.MethodPost, "/api/auth/logout", nil, user, token.Key)
	handler.Logout(c)
	require.Equal(t, http.StatusOK, w.Code)

	// the token is already gone
	c, w = testContext(http.MethodPost, "/api/auth/logout", nil, user, token.Key)
	handler.Logout(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var response envelope
	decode(t, w, &response)
	assert.Equal(t, apierrors.StatusError, response.Status)
	assert.Equal(t, apierrors.ErrCodeOperationFailed, response.Code)
}

func TestAuthHandler_VerifyTokenAndCurrentUser(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewAuthHandler(env.authService)
	user, token := env.registerUser(t, "ada")

	c, w := testContext(http.MethodGet, "/api/auth/verify-token", nil, user, token.Key)
	handler.VerifyToken(c)
	require.Equal(t, http.StatusOK, w.Code)

	var verified struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		User    dto.UserDTO `json:"user"`
	}
	decode(t, w, &verified)
	assert.Equal(t, "Token is valid", verified.Message)
	assert.Equal(t, user.ID, verified.User.ID)

	c, w = testContext(http.MethodGet, "/api/auth/current-user", nil, user, token.Key)
	handler.GetCurrentUser(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(http.MethodGet, "/api/auth/current-user", nil, nil, "")
	handler.GetCurrentUser(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
