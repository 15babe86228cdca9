package repository

import (
	"github.com/yukikurage/template-settings-api/internal/database"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/utils"
	"gorm.io/gorm"
)

// GormTenantRepository is a GORM implementation of TenantRepository
type GormTenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &GormTenantRepository{db: db}
}

// Create creates a new tenant
func (r *GormTenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// List retrieves tenants owned by filter.OwnerID. A zero page size returns
// every row.
func (r *GormTenantRepository) List(filter TenantFilter) ([]models.Tenant, int64, error) {
	query := r.db.Model(&models.Tenant{}).Scopes(database.OwnedBy(filter.OwnerID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tenants.id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize)))
	}

	tenants := []models.Tenant{}
	if err := listQuery.Preload("Owner").Find(&tenants).Error; err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// FindOwned finds a tenant by ID only if it is owned by ownerID
func (r *GormTenantRepository) FindOwned(id, ownerID uint64) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Preload("Owner").
		Scopes(database.OwnedBy(ownerID)).
		First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ExistsByEmail reports whether a tenant other than excludeID uses the email
func (r *GormTenantRepository) ExistsByEmail(email string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&models.Tenant{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Update saves the editable tenant fields
func (r *GormTenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Model(tenant).Select("name", "email").Updates(tenant).Error
}

// Delete deletes a tenant and all of its template settings in a transaction
func (r *GormTenantRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", id).Delete(&models.TemplateSetting{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Tenant{}, id).Error
	})
}
