package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartauth/auth-service/internal/api/handler"
	"github.com/smartauth/auth-service/internal/api/middleware"
	"github.com/smartauth/auth-service/internal/core/domain"
	"github.com/smartauth/auth-service/internal/core/service"
	mongostore "github.com/smartauth/auth-service/internal/infrastructure/db/mongo"
	redisstore "github.com/smartauth/auth-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Authorization policy, first match wins:
//  1. Public allow-list (registration, public probe, health, metrics, docs)
//     — no credential check.
//  2. /api/admin/* — Basic auth + ROLE_ADMIN.
//  3. Remaining /api routes — any authenticated, enabled principal.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	users := mongostore.NewUserRepository(db)
	roles := mongostore.NewRoleRepository(db)
	creds := redisstore.NewCredentialCache(rdb)

	authService := service.NewAuthService(users, roles, creds, log)
	userService := service.NewUserService(users, roles, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService)
	checkHandler := handler.NewCheckHandler()

	gate := middleware.BasicAuth(authService)

	// --- Public routes (no credential check) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.GET("/api/test/public", checkHandler.Public)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Admin routes (Basic auth + ROLE_ADMIN) ---
	admin := e.Group("/api/admin", gate, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/users/roles", adminHandler.AssignRole)

	// --- Authenticated routes (any enabled principal) ---
	secure := e.Group("/api/test", gate)
	secure.GET("/secure", checkHandler.Secure)

	return e
}
