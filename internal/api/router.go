package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/craftbase/auth-api/internal/api/handler"
	"github.com/craftbase/auth-api/internal/api/middleware"
	"github.com/craftbase/auth-api/internal/core/ports"
	"github.com/craftbase/auth-api/internal/infrastructure/http/handlers"
)

// Dependencies carries the collaborators the router wires into handlers.
// Construction and lifecycle (worker startup, connections) belong to main.
type Dependencies struct {
	Sessions ports.SessionService
	Resets   ports.PasswordResetService
	Codec    ports.TokenCodec
	Gate     ports.BruteForceGate
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Resets)

	// --- Session routes ---
	e.POST("/auth/login", authHandler.Login, middleware.LoginThrottle(deps.Gate, deps.Log))
	e.POST("/auth/refresh", authHandler.Refresh, middleware.AuthAllowExpired(deps.Codec))
	e.POST("/auth/logout", authHandler.Logout, middleware.Auth(deps.Codec))

	// --- Forgot-password routes (unauthenticated by design) ---
	e.POST("/forgot-password/init", authHandler.InitForgotPassword)
	e.GET("/forgot-password/verify", authHandler.VerifyForgotPassword)
	e.PUT("/forgot-password/confirm", authHandler.ConfirmForgotPassword)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
