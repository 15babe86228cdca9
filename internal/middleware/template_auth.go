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

// RequireTemplateAccess loads the template setting named by the :id
// parameter if its tenant is owned by the caller
func RequireTemplateAccess(templateService *services.TemplateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		templateID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.NotFound(c, "")
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		template, err := templateService.GetTemplate(templateID, userID)
		if err != nil {
			// Return 404 instead of 403 to avoid leaking existence
			if errors.Is(err, services.ErrTemplateNotFound) {
				apierrors.NotFound(c, "")
				return
			}
			logger.FromGin(c).Error("Failed to load template setting", zap.Uint64("template_id", templateID), zap.Error(err))
			apierrors.InternalError(c, "")
			return
		}
		if !models.TemplateBelongsTo(template, userID) {
			apierrors.NotFound(c, "")
			return
		}

		c.Set(constants.ContextKeyTemplate, template)
		c.Next()
	}
}

// GetTemplate retrieves the template setting loaded by RequireTemplateAccess
func GetTemplate(c *gin.Context) (*models.TemplateSetting, bool) {
	value, exists := c.Get(constants.ContextKeyTemplate)
	if !exists {
		return nil, false
	}
	template, ok := value.(*models.TemplateSetting)
	return template, ok && template != nil
}
