package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/dto"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/metrics"
	"github.com/yukikurage/template-settings-api/internal/middleware"
	"github.com/yukikurage/template-settings-api/internal/services"
	"github.com/yukikurage/template-settings-api/internal/utils"
	"go.uber.org/zap"
)

const resourceTenant = "tenant"

// TenantHandler serves tenant CRUD scoped to the caller's ownership.
type TenantHandler struct {
	tenantService *services.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	RegisterValidators()
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// ListOwnTenants returns every tenant the caller owns.
func (h *TenantHandler) ListOwnTenants(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tenants, _, err := h.tenantService.ListTenants(services.ListTenantsInput{OwnerID: userID})
	if err != nil {
		respondTenantError(c, "", err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"tenants": dto.ToTenantDTOs(tenants),
	})
}

// ListTenants returns a page of the caller's tenants.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	tenants, total, err := h.tenantService.ListTenants(services.ListTenantsInput{
		OwnerID:  userID,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondTenantError(c, "", err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"tenants":    dto.ToTenantDTOs(tenants),
		"pagination": params.Response(total),
	})
}

// CreateTenant creates a tenant owned by the caller.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTenantRequest struct {
		Name  string `json:"name" binding:"required,max=100"`
		Email string `json:"email" binding:"required,email,max=254"`
	}

	var req CreateTenantRequest
	if !bindJSON(c, &req, "Tenant creation failed") {
		return
	}

	tenant, err := h.tenantService.CreateTenant(services.CreateTenantInput{
		Name:    req.Name,
		Email:   req.Email,
		OwnerID: userID,
	})
	if err != nil {
		respondTenantError(c, "Tenant creation failed", err)
		return
	}

	metrics.RecordResourceOperation(resourceTenant, "create")
	respondSuccess(c, http.StatusCreated, "Tenant created successfully", gin.H{
		"tenant": dto.ToTenantDTO(*tenant),
	})
}

// GetTenant returns the tenant loaded by RequireTenantAccess.
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, exists := middleware.GetTenant(c)
	if !exists {
		apierrors.NotFound(c, "")
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"tenant": dto.ToTenantDTO(*tenant),
	})
}

// UpdateTenant applies a partial update for both PUT and PATCH.
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	tenant, exists := middleware.GetTenant(c)
	if !exists {
		apierrors.NotFound(c, "")
		return
	}
	userID, _ := middleware.GetUserID(c)

	type UpdateTenantRequest struct {
		Name  *string `json:"name" binding:"omitempty,max=100"`
		Email *string `json:"email" binding:"omitempty,email,max=254"`
	}

	var req UpdateTenantRequest
	if !bindJSON(c, &req, "Tenant update failed") {
		return
	}

	updated, err := h.tenantService.UpdateTenant(tenant.ID, userID, services.UpdateTenantInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondTenantError(c, "Tenant update failed", err)
		return
	}

	metrics.RecordResourceOperation(resourceTenant, "update")
	respondSuccess(c, http.StatusOK, "Tenant updated successfully", gin.H{
		"tenant": dto.ToTenantDTO(*updated),
	})
}

// DeleteTenant removes the tenant and its template settings.
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	tenant, exists := middleware.GetTenant(c)
	if !exists {
		apierrors.NotFound(c, "")
		return
	}
	userID, _ := middleware.GetUserID(c)

	if err := h.tenantService.DeleteTenant(tenant.ID, userID); err != nil {
		respondTenantError(c, "", err)
		return
	}

	metrics.RecordResourceOperation(resourceTenant, "delete")
	respondSuccess(c, http.StatusOK, "Tenant deleted successfully", nil)
}

func respondTenantError(c *gin.Context, message string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, message, verr.Fields)
	case errors.Is(err, services.ErrTenantNotFound):
		apierrors.NotFound(c, "")
	default:
		logger.FromGin(c).Error("Request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
