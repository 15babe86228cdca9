package models

import "time"

type Tenant struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	OwnerID   *uint64   `gorm:"index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner     *User             `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	Templates []TemplateSetting `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

// TenantBelongsTo reports whether the tenant is owned by the given user.
// Orphaned tenants belong to nobody.
func TenantBelongsTo(tenant *Tenant, userID uint64) bool {
	return tenant != nil && tenant.OwnerID != nil && *tenant.OwnerID == userID
}
