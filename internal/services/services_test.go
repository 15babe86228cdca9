package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/template-settings-api/internal/database"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "Tr1cky-Passphrase"

type serviceTestEnv struct {
	db       *gorm.DB
	hasher   *BcryptHasher
	auth     *AuthService
	profile  *ProfileService
	tenant   *TenantService
	template *TemplateService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
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

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	hasher := &BcryptHasher{Cost: bcrypt.MinCost}

	return serviceTestEnv{
		db:       db,
		hasher:   hasher,
		auth:     NewAuthService(userRepo, tokenRepo, tenantRepo, hasher),
		profile:  NewProfileService(userRepo, profileRepo, hasher),
		tenant:   NewTenantService(tenantRepo),
		template: NewTemplateService(templateRepo, tenantRepo),
	}
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		PhoneNumber:     "+14155550123",
		Password:        testPassword,
		PasswordConfirm: testPassword,
	}
}

func (env serviceTestEnv) register(t *testing.T, username string) (*models.User, *models.AuthToken) {
	t.Helper()

	user, token, err := env.auth.Register(registerInput(username))
	require.NoError(t, err)
	return user, token
}

func (env serviceTestEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}
