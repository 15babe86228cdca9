package repository

import (
	"time"

	"github.com/yukikurage/template-settings-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfileAndTenant creates a user, their empty profile, their
	// default tenant and their bearer token within a single transaction.
	CreateWithProfileAndTenant(user *models.User, profile *models.UserProfile, tenant *models.Tenant, token *models.AuthToken) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(email string) (bool, error)

	// ExistsByUsername reports whether a user with the username exists
	ExistsByUsername(username string) (bool, error)

	// UpdateLastLogin records a successful login
	UpdateLastLogin(userID uint64, at time.Time) error

	// UpdateWithProfile saves the editable user fields and the profile together
	UpdateWithProfile(user *models.User, profile *models.UserProfile) error

	// UpdatePasswordAndRevokeTokens replaces the password hash and deletes
	// every token of the user in one transaction
	UpdatePasswordAndRevokeTokens(userID uint64, passwordHash string) error
}

// ProfileRepository defines the interface for user profile data access
type ProfileRepository interface {
	// GetOrCreate returns the user's profile, inserting an empty one if missing
	GetOrCreate(userID uint64) (*models.UserProfile, error)

	// FindByUserID finds the profile of a user
	FindByUserID(userID uint64) (*models.UserProfile, error)
}

// TokenRepository defines the interface for bearer token data access
type TokenRepository interface {
	// GetOrCreate returns the user's token, storing newKey if none exists
	GetOrCreate(userID uint64, newKey string) (*models.AuthToken, error)

	// FindByKey finds a token and its user
	FindByKey(key string) (*models.AuthToken, error)

	// Delete removes a single token, returning the number of deleted rows
	Delete(key string) (int64, error)

	// DeleteAllForUser removes every token of the user
	DeleteAllForUser(userID uint64) error
}

// TenantFilter holds filtering options for listing tenants
type TenantFilter struct {
	OwnerID  uint64
	Page     int
	PageSize int
}

// TenantRepository defines the interface for tenant data access
type TenantRepository interface {
	// Create creates a new tenant
	Create(tenant *models.Tenant) error

	// List retrieves tenants owned by filter.OwnerID
	List(filter TenantFilter) ([]models.Tenant, int64, error)

	// FindOwned finds a tenant by ID only if it is owned by ownerID
	FindOwned(id, ownerID uint64) (*models.Tenant, error)

	// ExistsByEmail reports whether another tenant uses the email
	ExistsByEmail(email string, excludeID uint64) (bool, error)

	// Update saves the editable tenant fields
	Update(tenant *models.Tenant) error

	// Delete deletes a tenant and its template settings
	Delete(id uint64) error
}

// TemplateFilter holds filtering options for listing template settings
type TemplateFilter struct {
	// VisibleToUserID restricts results to templates of tenants the user owns
	VisibleToUserID uint64
	TenantID        *uint64
	CreatedByID     *uint64
	Page            int
	PageSize        int
}

// TemplateRepository defines the interface for template setting data access
type TemplateRepository interface {
	// Create creates a new template setting
	Create(template *models.TemplateSetting) error

	// List retrieves visible template settings with filtering and pagination
	List(filter TemplateFilter) ([]models.TemplateSetting, int64, error)

	// FindVisible finds a template setting by ID if the user owns its tenant
	FindVisible(id, userID uint64) (*models.TemplateSetting, error)

	// Update saves the editable template fields
	Update(template *models.TemplateSetting) error

	// Delete deletes a template setting
	Delete(id uint64) error
}
