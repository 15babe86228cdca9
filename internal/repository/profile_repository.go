package repository

import (
	"github.com/yukikurage/template-settings-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetOrCreate inserts an empty profile unless one exists, then reads it back.
// The unique user_id index makes concurrent first access converge on one row.
func (r *GormProfileRepository) GetOrCreate(userID uint64) (*models.UserProfile, error) {
	candidate := &models.UserProfile{UserID: userID}
	if err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(candidate).Error; err != nil {
		return nil, err
	}

	return r.FindByUserID(userID)
}

// FindByUserID finds the profile of a user
func (r *GormProfileRepository) FindByUserID(userID uint64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
