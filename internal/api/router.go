package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/memberhub/community-api/internal/api/handler"
	"github.com/memberhub/community-api/internal/api/middleware"
	"github.com/memberhub/community-api/internal/core/domain"
	"github.com/memberhub/community-api/internal/core/service"
	redisdb "github.com/memberhub/community-api/internal/infrastructure/db/redis"
	"github.com/memberhub/community-api/internal/infrastructure/db/sqlite"
)

// RouterConfig carries the settings the router needs beyond its connections.
type RouterConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, which disables the feed cache and the redis readiness check.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("community"))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	keyRepo := sqlite.NewKeyRepository(db)
	announcementRepo := sqlite.NewAnnouncementRepository(db)

	var feedCache service.FeedCache
	if rdb != nil {
		feedCache = redisdb.NewFeedCache(rdb)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	regService := service.NewRegistrationService(keyRepo, log)
	memberService := service.NewMemberService(userRepo, keyRepo, log)
	announcementService := service.NewAnnouncementService(announcementRepo, feedCache, log)

	authHandler := handler.NewAuthHandler(authService)
	regHandler := handler.NewRegistrationHandler(regService)
	adminHandler := handler.NewAdminHandler(memberService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)

	// --- Public routes ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/signup", regHandler.Signup)
	e.POST("/api/request-key", regHandler.RequestKey)
	e.GET("/api/updates", announcementHandler.List)

	// --- Admin routes (bearer token + admin role) ---
	admin := e.Group("/api/admin", middleware.Auth(cfg.JWTSecret), middleware.RBAC(domain.RoleAdmin))
	admin.GET("/keys", adminHandler.ListKeys)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/ban", adminHandler.SetBanned)
	admin.POST("/updates", announcementHandler.Post)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
