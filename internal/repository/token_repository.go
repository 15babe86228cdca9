package repository

import (
	"github.com/yukikurage/template-settings-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// GetOrCreate returns the user's token, storing newKey if none exists
func (r *GormTokenRepository) GetOrCreate(userID uint64, newKey string) (*models.AuthToken, error) {
	return getOrCreateToken(r.db, userID, newKey)
}

// getOrCreateToken is shared with the registration transaction.
func getOrCreateToken(db *gorm.DB, userID uint64, newKey string) (*models.AuthToken, error) {
	candidate := &models.AuthToken{Key: newKey, UserID: userID}
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(candidate).Error; err != nil {
		return nil, err
	}

	var token models.AuthToken
	if err := db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByKey finds a token and its user
func (r *GormTokenRepository) FindByKey(key string) (*models.AuthToken, error) {
	if key == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var token models.AuthToken
	if err := r.db.Preload("User").
		Where(&models.AuthToken{Key: key}).
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes a single token, returning the number of deleted rows
func (r *GormTokenRepository) Delete(key string) (int64, error) {
	if key == "" {
		return 0, nil
	}

	result := r.db.Where(&models.AuthToken{Key: key}).Delete(&models.AuthToken{})
	return result.RowsAffected, result.Error
}

// DeleteAllForUser removes every token of the user
func (r *GormTokenRepository) DeleteAllForUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
