package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/constants"
	"github.com/yukikurage/template-settings-api/internal/dto"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/metrics"
	"github.com/yukikurage/template-settings-api/internal/middleware"
	"github.com/yukikurage/template-settings-api/internal/services"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	RegisterValidators()
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates an account and returns its bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username        string `json:"username" binding:"required,max=150"`
		Email           string `json:"email" binding:"required,email,max=254"`
		FirstName       string `json:"first_name" binding:"required,max=30"`
		LastName        string `json:"last_name" binding:"required,max=30"`
		PhoneNumber     string `json:"phone_number" binding:"omitempty,max=17,phone"`
		Password        string `json:"password" binding:"required"`
		PasswordConfirm string `json:"password_confirm" binding:"required"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req, "Registration failed") {
		metrics.RecordRegistration(metrics.OutcomeFailure)
		return
	}

	user, token, err := h.authService.Register(services.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		metrics.RecordRegistration(metrics.OutcomeFailure)
		respondAuthError(c, "Registration failed", err)
		return
	}

	metrics.RecordRegistration(metrics.OutcomeSuccess)
	logger.FromGin(c).Info("User registered", zap.Uint64("user_id", user.ID))

	respondSuccess(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  dto.ToUserDTO(*user),
		"token": token.Key,
	})
}

// Login authenticates a user and stores their token in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req, "Login failed") {
		metrics.RecordLogin(metrics.OutcomeFailure)
		return
	}

	user, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.RecordLogin(metrics.OutcomeFailure)
		respondAuthError(c, "Login failed", err)
		return
	}

	if session, ok := currentSession(c); ok {
		session.Set(constants.SessionKeyToken, token.Key)
		if err := session.Save(); err != nil {
			logger.FromGin(c).Error("Failed to save session", zap.Error(err))
			apierrors.InternalError(c, "Failed to save session")
			return
		}
	}

	metrics.RecordLogin(metrics.OutcomeSuccess)

	respondSuccess(c, http.StatusOK, "Login successful", gin.H{
		"user":  dto.ToUserDTO(*user),
		"token": token.Key,
	})
}

// Logout revokes the caller's token and clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.authService.Logout(middleware.GetTokenKey(c))

	if session, ok := currentSession(c); ok {
		session.Clear()
		if saveErr := session.Save(); saveErr != nil {
			logger.FromGin(c).Warn("Failed to clear session", zap.Error(saveErr))
		}
	}

	if err != nil {
		respondAuthError(c, "Logout failed", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Logout successful", nil)
}

// VerifyToken confirms the caller's credentials are valid.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	respondSuccess(c, http.StatusOK, "Token is valid", gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, "", err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"user": dto.ToUserDTO(*user),
	})
}

func respondAuthError(c *gin.Context, message string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, message, verr.Fields)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "Invalid email or password.")
	case errors.Is(err, services.ErrAccountDisabled):
		apierrors.InvalidCredentials(c, "User account is disabled.")
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "Invalid token.")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found.")
	case errors.Is(err, services.ErrLogoutFailed):
		apierrors.OperationFailed(c, message+": no active token")
	default:
		logger.FromGin(c).Error("Request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
