package dto

import (
	"time"

	"github.com/yukikurage/template-settings-api/internal/models"
)

// TenantDTO represents a tenant in API responses
type TenantDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Owner     *uint64   `json:"owner"`
	OwnerName string    `json:"owner_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateSettingDTO represents a template setting in API responses
type TemplateSettingDTO struct {
	ID            uint64         `json:"id"`
	Tenant        uint64         `json:"tenant"`
	TenantName    string         `json:"tenant_name"`
	TemplateName  string         `json:"template_name"`
	Settings      models.JSONMap `json:"settings"`
	CreatedBy     *uint64        `json:"created_by"`
	CreatedByName string         `json:"created_by_name"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToTenantDTO converts a Tenant model to TenantDTO
func ToTenantDTO(tenant models.Tenant) TenantDTO {
	dto := TenantDTO{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Email:     tenant.Email,
		Owner:     tenant.OwnerID,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}

	// Include owner name if preloaded
	if tenant.Owner != nil {
		dto.OwnerName = tenant.Owner.FullName()
	}

	return dto
}

// ToTenantDTOs converts a slice of tenants
func ToTenantDTOs(tenants []models.Tenant) []TenantDTO {
	items := make([]TenantDTO, len(tenants))
	for i, tenant := range tenants {
		items[i] = ToTenantDTO(tenant)
	}
	return items
}

// ToTemplateSettingDTO converts a TemplateSetting model to TemplateSettingDTO
func ToTemplateSettingDTO(template models.TemplateSetting) TemplateSettingDTO {
	dto := TemplateSettingDTO{
		ID:           template.ID,
		Tenant:       template.TenantID,
		TemplateName: template.TemplateName,
		Settings:     template.Settings,
		CreatedBy:    template.CreatedByID,
		UpdatedAt:    template.UpdatedAt,
	}
	if dto.Settings == nil {
		dto.Settings = models.JSONMap{}
	}

	if template.Tenant != nil {
		dto.TenantName = template.Tenant.Name
	}
	if template.CreatedBy != nil {
		dto.CreatedByName = template.CreatedBy.FullName()
	}

	return dto
}

// ToTemplateSettingDTOs converts a slice of template settings
func ToTemplateSettingDTOs(templates []models.TemplateSetting) []TemplateSettingDTO {
	items := make([]TemplateSettingDTO, len(templates))
	for i, template := range templates {
		items[i] = ToTemplateSettingDTO(template)
	}
	return items
}
