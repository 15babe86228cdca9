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

var ErrTenantNotFound = errors.New("tenant not found")

// TenantService handles tenant business logic. Every lookup is scoped to
// tenants owned by the caller.
type TenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
	}
}

// ListTenantsInput represents filters for listing tenants
type ListTenantsInput struct {
	OwnerID  uint64
	Page     int
	PageSize int
}

// CreateTenantInput represents input for creating a tenant
type CreateTenantInput struct {
	Name    string
	Email   string
	OwnerID uint64
}

// UpdateTenantInput represents a partial tenant update
type UpdateTenantInput struct {
	Name  *string
	Email *string
}

// ListTenants returns the caller's tenants
func (s *TenantService) ListTenants(input ListTenantsInput) ([]models.Tenant, int64, error) {
	tenants, total, err := s.tenantRepo.List(repository.TenantFilter{
		OwnerID:  input.OwnerID,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, total, nil
}

// CreateTenant creates a tenant owned by input.OwnerID
func (s *TenantService) CreateTenant(input CreateTenantInput) (*models.Tenant, error) {
	tenant := &models.Tenant{
		Name:    strings.TrimSpace(input.Name),
		Email:   NormalizeEmail(input.Email),
		OwnerID: &input.OwnerID,
	}

	verr := newValidationError("Tenant creation failed")
	validateTenantName(tenant.Name, verr)
	if err := s.checkTenantEmail(tenant.Email, 0, verr); err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Create(tenant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr.Add("email", msgTenantEmailTaken)
			return nil, verr
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return s.GetTenant(tenant.ID, input.OwnerID)
}

// GetTenant returns a tenant only if userID owns it
func (s *TenantService) GetTenant(id, userID uint64) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.FindOwned(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return tenant, nil
}

// UpdateTenant applies a partial update. The owner never changes.
func (s *TenantService) UpdateTenant(id, userID uint64, input UpdateTenantInput) (*models.Tenant, error) {
	tenant, err := s.GetTenant(id, userID)
	if err != nil {
		return nil, err
	}

	verr := newValidationError("Tenant update failed")
	if input.Name != nil {
		tenant.Name = strings.TrimSpace(*input.Name)
		validateTenantName(tenant.Name, verr)
	}
	if input.Email != nil {
		tenant.Email = NormalizeEmail(*input.Email)
		if err := s.checkTenantEmail(tenant.Email, tenant.ID, verr); err != nil {
			return nil, err
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Update(tenant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr.Add("email", msgTenantEmailTaken)
			return nil, verr
		}
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	return s.GetTenant(id, userID)
}

// DeleteTenant removes a tenant and its template settings
func (s *TenantService) DeleteTenant(id, userID uint64) error {
	tenant, err := s.GetTenant(id, userID)
	if err != nil {
		return err
	}

	if err := s.tenantRepo.Delete(tenant.ID); err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}

func (s *TenantService) checkTenantEmail(email string, excludeID uint64, verr *ValidationError) error {
	if email == "" {
		verr.Add("email", MsgBlank)
		return nil
	}
	if !ValidEmail(email) {
		verr.Add("email", MsgInvalidEmail)
		return nil
	}
	if len(email) > constants.MaxEmailLength {
		checkMaxLength(verr, "email", email, constants.MaxEmailLength)
		return nil
	}

	taken, err := s.tenantRepo.ExistsByEmail(email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check tenant email: %w", err)
	}
	if taken {
		verr.Add("email", msgTenantEmailTaken)
	}
	return nil
}

func validateTenantName(name string, verr *ValidationError) {
	if checkRequired(verr, "name", name) {
		checkMaxLength(verr, "name", name, constants.MaxTenantNameLength)
	}
}
