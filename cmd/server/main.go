package main

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/template-settings-api/internal/config"
	"github.com/yukikurage/template-settings-api/internal/database"
	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()
	log := logger.GetLogger()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}

	r := router.New(database.GetDB(), router.Options{
		ServiceName:  cfg.ServiceName,
		SessionStore: store,
	})

	// Start server
	addr := ":" + cfg.ServerPort
	log.Info("Server starting", zap.String("addr", addr), zap.String("session_store", cfg.SessionStore))
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// newSessionStore builds the Redis store, or a cookie store when
// SESSION_STORE=cookie.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
