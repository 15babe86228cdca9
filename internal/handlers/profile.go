package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/dto"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/middleware"
	"github.com/yukikurage/template-settings-api/internal/services"
	"go.uber.org/zap"
)

// ProfileHandler serves the current user's profile and password.
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	RegisterValidators()
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns the caller's profile, creating it on first access.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondProfileError(c, "", err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"profile": dto.ToProfileDTO(*user, *profile),
	})
}

// UpdateProfile applies a partial update for both PUT and PATCH.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		FirstName   *string `json:"first_name" binding:"omitempty,max=30"`
		LastName    *string `json:"last_name" binding:"omitempty,max=30"`
		PhoneNumber *string `json:"phone_number" binding:"omitempty,max=17,phone"`
		Bio         *string `json:"bio" binding:"omitempty,max=500"`
		Company     *string `json:"company" binding:"omitempty,max=100"`
		Website     *string `json:"website" binding:"omitempty,max=200,url"`
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req, "Profile update failed") {
		return
	}

	user, profile, err := h.profileService.UpdateProfile(userID, services.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Company:     req.Company,
		Website:     req.Website,
	})
	if err != nil {
		respondProfileError(c, "Profile update failed", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Profile updated successfully", gin.H{
		"profile": dto.ToProfileDTO(*user, *profile),
	})
}

// ChangePassword replaces the caller's password and revokes all tokens.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangePasswordRequest struct {
		OldPassword        string `json:"old_password" binding:"required"`
		NewPassword        string `json:"new_password" binding:"required"`
		NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req, "Password change failed") {
		return
	}

	err := h.profileService.ChangePassword(userID, services.ChangePasswordInput{
		OldPassword:        req.OldPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	})
	if err != nil {
		respondProfileError(c, "Password change failed", err)
		return
	}

	logger.FromGin(c).Info("Password changed, tokens revoked", zap.Uint64("user_id", userID))
	respondSuccess(c, http.StatusOK, "Password changed successfully. Please login again.", nil)
}

func respondProfileError(c *gin.Context, message string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, message, verr.Fields)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "Profile not found.")
	default:
		logger.FromGin(c).Error("Request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
