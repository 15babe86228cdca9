package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/template-settings-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when creating the profile fails inside the registration transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
	// ErrCreateTenant is returned when creating the default tenant fails inside the registration transaction.
	ErrCreateTenant = errors.New("user repository: create tenant failed")
	// ErrIssueToken is returned when issuing the token fails inside the registration transaction.
	ErrIssueToken = errors.New("user repository: issue token failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfileAndTenant creates the user and everything registration
// attaches to it atomically. Wrapped errors keep the driver error reachable
// through errors.Is so callers can detect unique violations.
func (r *GormUserRepository) CreateWithProfileAndTenant(user *models.User, profile *models.UserProfile, tenant *models.Tenant, token *models.AuthToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateUser, err)
		}

		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateProfile, err)
		}

		tenant.OwnerID = &user.ID
		if err := tx.Create(tenant).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateTenant, err)
		}

		issued, err := getOrCreateToken(tx, user.ID, token.Key)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIssueToken, err)
		}
		*token = *issued

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail reports whether a user with the email exists
func (r *GormUserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByUsername reports whether a user with the username exists
func (r *GormUserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// UpdateLastLogin records a successful login
func (r *GormUserRepository) UpdateLastLogin(userID uint64, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("last_login", at).Error
}

// UpdateWithProfile writes only the client-editable columns so a concurrent
// password change is never overwritten.
func (r *GormUserRepository) UpdateWithProfile(user *models.User, profile *models.UserProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).
			Select("first_name", "last_name", "phone_number").
			Updates(user).Error; err != nil {
			return err
		}

		return tx.Model(profile).
			Select("bio", "company", "website").
			Updates(profile).Error
	})
}

// UpdatePasswordAndRevokeTokens replaces the hash and logs the user out everywhere
func (r *GormUserRepository) UpdatePasswordAndRevokeTokens(userID uint64, passwordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return NewTokenRepository(tx).DeleteAllForUser(userID)
	})
}
