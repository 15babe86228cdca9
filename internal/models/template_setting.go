package models

import "time"

type TemplateSetting struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TenantID     uint64    `gorm:"not null;index" json:"tenant_id"`
	TemplateName string    `gorm:"type:varchar(50);not null" json:"template_name"`
	Settings     JSONMap   `json:"settings"`
	CreatedByID  *uint64   `gorm:"index" json:"created_by_id"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tenant    *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	CreatedBy *User   `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
}

// TemplateBelongsTo reports whether the template is reachable by the user
// through tenant ownership. The Tenant relation must be loaded.
func TemplateBelongsTo(template *TemplateSetting, userID uint64) bool {
	return template != nil && TenantBelongsTo(template.Tenant, userID)
}
