package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/template-settings-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a tenants query to rows owned by userID.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenants.owner_id = ?", userID)
	}
}

// VisibleTo restricts a template_settings query to rows whose tenant is owned
// by userID.
func VisibleTo(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		ownedTenants := db.Session(&gorm.Session{NewDB: true}).
			Table("tenants").
			Select("tenants.id").
			Scopes(OwnedBy(userID))
		return db.Where("template_settings.tenant_id IN (?)", ownedTenants)
	}
}

// CreatedBy restricts a template_settings query to rows created by userID.
func CreatedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("template_settings.created_by_id = ?", userID)
	}
}
