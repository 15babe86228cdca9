package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/dto"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/metrics"
	"github.com/yukikurage/template-settings-api/internal/middleware"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/services"
	"github.com/yukikurage/template-settings-api/internal/utils"
	"go.uber.org/zap"
)

const resourceTemplate = "template_setting"

// TemplateHandler serves template settings of the caller's tenants.
type TemplateHandler struct {
	templateService *services.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	RegisterValidators()
	return &TemplateHandler{
		templateService: templateService,
	}
}

// ListTemplates returns a page of visible template settings.
// Can filter by tenant
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var tenantID *uint64
	if raw := c.Query("tenant"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid filter", apierrors.FieldErrors{
				"tenant": {"A valid integer is required."},
			})
			return
		}
		tenantID = &id
	}

	params := utils.GetPaginationParams(c)
	templates, total, err := h.templateService.ListTemplates(services.ListTemplatesInput{
		UserID:   userID,
		TenantID: tenantID,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondTemplateError(c, "", err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"templates":  dto.ToTemplateSettingDTOs(templates),
		"pagination": params.Response(total),
	})
}

// MyTemplates returns visible template settings the caller created.
func (h *TemplateHandler) MyTemplates(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	templates, _, err := h.templateService.MyTemplates(services.ListTemplatesInput{UserID: userID})
	if err != nil {
		respondTemplateError(c, "", err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"templates": dto.ToTemplateSettingDTOs(templates),
	})
}

// CreateTemplate creates a template setting in one of the caller's tenants.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTemplateRequest struct {
		Tenant       *uint64         `json:"tenant" binding:"required"`
		TemplateName string          `json:"template_name" binding:"required,max=50"`
		Settings     *models.JSONMap `json:"settings"`
	}

	var req CreateTemplateRequest
	if !bindJSON(c, &req, "Template setting creation failed") {
		return
	}

	input := services.CreateTemplateInput{
		TenantID:     *req.Tenant,
		TemplateName: req.TemplateName,
		CreatorID:    userID,
	}
	if req.Settings != nil {
		input.Settings = *req.Settings
	}

	template, err := h.templateService.CreateTemplate(input)
	if err != nil {
		respondTemplateError(c, "Template setting creation failed", err)
		return
	}

	metrics.RecordResourceOperation(resourceTemplate, "create")
	respondSuccess(c, http.StatusCreated, "Template setting created successfully", gin.H{
		"template": dto.ToTemplateSettingDTO(*template),
	})
}

// GetTemplate returns the template setting loaded by RequireTemplateAccess.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, exists := middleware.GetTemplate(c)
	if !exists {
		apierrors.NotFound(c, "")
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"template": dto.ToTemplateSettingDTO(*template),
	})
}

// UpdateTemplate applies a partial update for both PUT and PATCH.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	template, exists := middleware.GetTemplate(c)
	if !exists {
		apierrors.NotFound(c, "")
		return
	}
	userID, _ := middleware.GetUserID(c)

	type UpdateTemplateRequest struct {
		Tenant       *uint64         `json:"tenant"`
		TemplateName *string         `json:"template_name" binding:"omitempty,max=50"`
		Settings     *models.JSONMap `json:"settings"`
	}

	var req UpdateTemplateRequest
	if !bindJSON(c, &req, "Template setting update failed") {
		return
	}

	updated, err := h.templateService.UpdateTemplate(template.ID, userID, services.UpdateTemplateInput{
		TenantID:     req.Tenant,
		TemplateName: req.TemplateName,
		Settings:     req.Settings,
	})
	if err != nil {
		respondTemplateError(c, "Template setting update failed", err)
		return
	}

	metrics.RecordResourceOperation(resourceTemplate, "update")
	respondSuccess(c, http.StatusOK, "Template setting updated successfully", gin.H{
		"template": dto.ToTemplateSettingDTO(*updated),
	})
}

// DeleteTemplate removes the template setting.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	template, exists := middleware.GetTemplate(c)
	if !exists {
		apierrors.NotFound(c, "")
		return
	}
	userID, _ := middleware.GetUserID(c)

	if err := h.templateService.DeleteTemplate(template.ID, userID); err != nil {
		respondTemplateError(c, "", err)
		return
	}

	metrics.RecordResourceOperation(resourceTemplate, "delete")
	respondSuccess(c, http.StatusOK, "Template setting deleted successfully", nil)
}

func respondTemplateError(c *gin.Context, message string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, message, verr.Fields)
	case errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, "")
	default:
		logger.FromGin(c).Error("Request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
