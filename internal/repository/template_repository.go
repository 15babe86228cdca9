package repository

import (
	"github.com/yukikurage/template-settings-api/internal/database"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/utils"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Create creates a new template setting
func (r *GormTemplateRepository) Create(template *models.TemplateSetting) error {
	if template.Settings == nil {
		template.Settings = models.JSONMap{}
	}
	return r.db.Create(template).Error
}

// List retrieves template settings visible to filter.VisibleToUserID
func (r *GormTemplateRepository) List(filter TemplateFilter) ([]models.TemplateSetting, int64, error) {
	query := r.db.Model(&models.TemplateSetting{}).Scopes(database.VisibleTo(filter.VisibleToUserID))

	if filter.TenantID != nil {
		query = query.Where("template_settings.tenant_id = ?", *filter.TenantID)
	}
	if filter.CreatedByID != nil {
		query = query.Scopes(database.CreatedBy(*filter.CreatedByID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("template_settings.id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	templates := []models.TemplateSetting{}
	if err := listQuery.Preload("Tenant").Preload("CreatedBy").Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

// FindVisible finds a template setting by ID if the user owns its tenant
func (r *GormTemplateRepository) FindVisible(id, userID uint64) (*models.TemplateSetting, error) {
	var template models.TemplateSetting
	if err := r.db.Preload("Tenant").Preload("CreatedBy").
		Scopes(database.VisibleTo(userID)).
		First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// Update saves the editable template fields
func (r *GormTemplateRepository) Update(template *models.TemplateSetting) error {
	if template.Settings == nil {
		template.Settings = models.JSONMap{}
	}
	return r.db.Model(template).
		Select("tenant_id", "template_name", "settings").
		Updates(template).Error
}

// Delete deletes a template setting
func (r *GormTemplateRepository) Delete(id uint64) error {
	return r.db.Delete(&models.TemplateSetting{}, id).Error
}
