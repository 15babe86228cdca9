package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/constants"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/services"
	"go.uber.org/zap"
)

// RequireTenantAccess loads the tenant named by the :id parameter if the
// caller owns it. Missing and foreign tenants both answer 404.
func RequireTenantAccess(tenantService *services.TenantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.NotFound(c, "")
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		tenant, err := tenantService.GetTenant(tenantID, userID)
		if err != nil {
			if errors.Is(err, services.ErrTenantNotFound) {
				apierrors.NotFound(c, "")
				return
			}
			logger.FromGin(c).Error("Failed to load tenant", zap.Uint64("tenant_id", tenantID), zap.Error(err))
			apierrors.InternalError(c, "")
			return
		}
		if !models.TenantBelongsTo(tenant, userID) {
			apierrors.NotFound(c, "")
			return
		}

		c.Set(constants.ContextKeyTenant, tenant)
		c.Next()
	}
}

// GetTenant retrieves the tenant loaded by RequireTenantAccess
func GetTenant(c *gin.Context) (*models.Tenant, bool) {
	value, exists := c.Get(constants.ContextKeyTenant)
	if !exists {
		return nil, false
	}
	tenant, ok := value.(*models.Tenant)
	return tenant, ok && tenant != nil
}
