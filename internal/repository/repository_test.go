package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/template-settings-api/internal/database"
	"github.com/yukikurage/template-settings-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTenant(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		Name:    name,
		Email:   name + "@tenants.example.com",
		OwnerID: &owner.ID,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}
