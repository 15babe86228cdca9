package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/constants"
	"github.com/yukikurage/template-settings-api/internal/handlers"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/metrics"
	"github.com/yukikurage/template-settings-api/internal/middleware"
	"github.com/yukikurage/template-settings-api/internal/repository"
	"github.com/yukikurage/template-settings-api/internal/services"
	"gorm.io/gorm"
)

// Options configures the HTTP router.
type Options struct {
	ServiceName string
	// SessionStore is optional; without it only header tokens authenticate.
	SessionStore sessions.Store
	Hasher       services.PasswordHasher
}

// New wires repositories, services and handlers onto a gin engine.
func New(db *gorm.DB, opts Options) *gin.Engine {
	hasher := opts.Hasher
	if hasher == nil {
		hasher = services.NewBcryptHasher()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokenRepo, tenantRepo, hasher)
	profileService := services.NewProfileService(userRepo, profileRepo, hasher)
	tenantService := services.NewTenantService(tenantRepo)
	templateService := services.NewTemplateService(templateRepo, tenantRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	templateHandler := handlers.NewTemplateHandler(templateService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.Middleware())
	r.Use(metrics.NewHTTPMetrics(opts.ServiceName).Middleware())
	if opts.SessionStore != nil {
		r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Template Settings API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	requireAuth := middleware.RequireAuth(authService)

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/verify-token", requireAuth, authHandler.VerifyToken)
			auth.GET("/current-user", requireAuth, authHandler.GetCurrentUser)
			auth.GET("/profile", requireAuth, profileHandler.GetProfile)
			auth.PUT("/profile/update", requireAuth, profileHandler.UpdateProfile)
			auth.PATCH("/profile/update", requireAuth, profileHandler.UpdateProfile)
			auth.POST("/change-password", requireAuth, profileHandler.ChangePassword)
			auth.GET("/tenants", requireAuth, tenantHandler.ListOwnTenants)
			auth.POST("/tenants/create", requireAuth, tenantHandler.CreateTenant)
		}

		// Tenant routes (protected)
		tenants := api.Group("/tenants")
		tenants.Use(requireAuth)
		{
			tenantAccess := middleware.RequireTenantAccess(tenantService)
			tenants.GET("", tenantHandler.ListTenants)
			tenants.POST("", tenantHandler.CreateTenant)
			tenants.GET("/:id", tenantAccess, tenantHandler.GetTenant)
			tenants.PUT("/:id", tenantAccess, tenantHandler.UpdateTenant)
			tenants.PATCH("/:id", tenantAccess, tenantHandler.UpdateTenant)
			tenants.DELETE("/:id", tenantAccess, tenantHandler.DeleteTenant)
		}

		// Template setting routes (protected)
		templates := api.Group("/templates")
		templates.Use(requireAuth)
		{
			templateAccess := middleware.RequireTemplateAccess(templateService)
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/my_templates", templateHandler.MyTemplates)
			templates.GET("/:id", templateAccess, templateHandler.GetTemplate)
			templates.PUT("/:id", templateAccess, templateHandler.UpdateTemplate)
			templates.PATCH("/:id", templateAccess, templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateAccess, templateHandler.DeleteTemplate)
		}
	}

	return r
}
