package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/template-settings-api/internal/constants"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("template setting not found")

const msgInvalidTenant = "Invalid pk \"%d\" - object does not exist."

// TemplateService handles template setting business logic. A template is
// visible to a user when its tenant is owned by that user.
type TemplateService struct {
	templateRepo repository.TemplateRepository
	tenantRepo   repository.TenantRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repository.TemplateRepository, tenantRepo repository.TenantRepository) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		tenantRepo:   tenantRepo,
	}
}

// ListTemplatesInput represents filters for listing template settings
type ListTemplatesInput struct {
	UserID   uint64
	TenantID *uint64
	Page     int
	PageSize int
}

// CreateTemplateInput represents input for creating a template setting
type CreateTemplateInput struct {
	TenantID     uint64
	TemplateName string
	Settings     models.JSONMap
	CreatorID    uint64
}

// UpdateTemplateInput represents a partial template setting update
type UpdateTemplateInput struct {
	TenantID     *uint64
	TemplateName *string
	Settings     *models.JSONMap
}

// ListTemplates returns template settings visible to the user
func (s *TemplateService) ListTemplates(input ListTemplatesInput) ([]models.TemplateSetting, int64, error) {
	return s.list(input, nil)
}

// MyTemplates returns visible template settings created by the user
func (s *TemplateService) MyTemplates(input ListTemplatesInput) ([]models.TemplateSetting, int64, error) {
	return s.list(input, &input.UserID)
}

func (s *TemplateService) list(input ListTemplatesInput, createdBy *uint64) ([]models.TemplateSetting, int64, error) {
	templates, total, err := s.templateRepo.List(repository.TemplateFilter{
		VisibleToUserID: input.UserID,
		TenantID:        input.TenantID,
		CreatedByID:     createdBy,
		Page:            input.Page,
		PageSize:        input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list template settings: %w", err)
	}
	return templates, total, nil
}

// CreateTemplate creates a template setting in a tenant the creator owns
func (s *TemplateService) CreateTemplate(input CreateTemplateInput) (*models.TemplateSetting, error) {
	template := &models.TemplateSetting{
		TenantID:     input.TenantID,
		TemplateName: strings.TrimSpace(input.TemplateName),
		Settings:     input.Settings,
		CreatedByID:  &input.CreatorID,
	}
	if template.Settings == nil {
		template.Settings = models.JSONMap{}
	}

	verr := newValidationError("Template setting creation failed")
	validateTemplateName(template.TemplateName, verr)
	if err := s.checkTenant(template.TenantID, input.CreatorID, verr); err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template setting: %w", err)
	}

	return s.GetTemplate(template.ID, input.CreatorID)
}

// GetTemplate returns a template setting only if it is visible to userID
func (s *TemplateService) GetTemplate(id, userID uint64) (*models.TemplateSetting, error) {
	template, err := s.templateRepo.FindVisible(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template setting: %w", err)
	}
	return template, nil
}

// UpdateTemplate applies a partial update. Moving a template requires
// owning the target tenant.
func (s *TemplateService) UpdateTemplate(id, userID uint64, input UpdateTemplateInput) (*models.TemplateSetting, error) {
	template, err := s.GetTemplate(id, userID)
	if err != nil {
		return nil, err
	}

	verr := newValidationError("Template setting update failed")
	if input.TemplateName != nil {
		template.TemplateName = strings.TrimSpace(*input.TemplateName)
		validateTemplateName(template.TemplateName, verr)
	}
	if input.TenantID != nil && *input.TenantID != template.TenantID {
		if err := s.checkTenant(*input.TenantID, userID, verr); err != nil {
			return nil, err
		}
		template.TenantID = *input.TenantID
	}
	if input.Settings != nil {
		template.Settings = *input.Settings
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template setting: %w", err)
	}

	return s.GetTemplate(id, userID)
}

// DeleteTemplate removes a template setting
func (s *TemplateService) DeleteTemplate(id, userID uint64) error {
	template, err := s.GetTemplate(id, userID)
	if err != nil {
		return err
	}

	if err := s.templateRepo.Delete(template.ID); err != nil {
		return fmt.Errorf("failed to delete template setting: %w", err)
	}
	return nil
}

func validateTemplateName(name string, verr *ValidationError) {
	if checkRequired(verr, "template_name", name) {
		checkMaxLength(verr, "template_name", name, constants.MaxTemplateNameLength)
	}
}

// checkTenant reports a missing tenant and a tenant owned by someone else
// with the same message.
func (s *TemplateService) checkTenant(tenantID, userID uint64, verr *ValidationError) error {
	if tenantID == 0 {
		verr.Add("tenant", MsgRequired)
		return nil
	}

	if _, err := s.tenantRepo.FindOwned(tenantID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verr.Add("tenant", fmt.Sprintf(msgInvalidTenant, tenantID))
			return nil
		}
		return fmt.Errorf("failed to find tenant: %w", err)
	}
	return nil
}
