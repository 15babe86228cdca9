package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/template-settings-api/internal/constants"
	"github.com/yukikurage/template-settings-api/internal/database"
	"github.com/yukikurage/template-settings-api/internal/models"
	"github.com/yukikurage/template-settings-api/internal/repository"
	"github.com/yukikurage/template-settings-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "Tr1cky-Passphrase"

type handlerTestEnv struct {
	db              *gorm.DB
	authService     *services.AuthService
	profileService  *services.ProfileService
	tenantService   *services.TenantService
	templateService *services.TemplateService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	hasher := &services.BcryptHasher{Cost: bcrypt.MinCost}

	return handlerTestEnv{
		db:              db,
		authService:     services.NewAuthService(userRepo, tokenRepo, tenantRepo, hasher),
		profileService:  services.NewProfileService(userRepo, profileRepo, hasher),
		tenantService:   services.NewTenantService(tenantRepo),
		templateService: services.NewTemplateService(templateRepo, tenantRepo),
	}
}

func (env handlerTestEnv) registerUser(t *testing.T, username string) (*models.User, *models.AuthToken) {
	t.Helper()

	user, token, err := env.authService.Register(services.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Password:        testPassword,
		PasswordConfirm: testPassword,
	})
	require.NoError(t, err)
	return user, token
}

func jsonBody(t *testing.T, payload interface{}) []byte {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body
}

// testContext builds a context for calling a handler directly, as if
// RequireAuth had authenticated user.
func testContext(method, url string, body []byte, user *models.User, tokenKey string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyTokenKey, tokenKey)
	}

	return c, w
}

// authedRouter mounts a single route behind a stub that authenticates user.
func authedRouter(user *models.User, method, path string, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}}, handlers...)
	r.Handle(method, path, chain...)
	return r
}

type envelope struct {
	Status  string              `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
