// Package http provides the HTTP server implementation for healthdesk.
package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/xiaot623/healthdesk/internal/config"
	"github.com/xiaot623/healthdesk/internal/service"
	"github.com/xiaot623/healthdesk/internal/transport/http/api"
)

// NewServer creates and configures the public HTTP server.
func NewServer(svc *service.Service, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.LogLevel == "debug"

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Rate limit applies to /ai only
	var aiMiddleware []echo.MiddlewareFunc
	if cfg.AIRateLimit > 0 {
		limiter := middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.AIRateLimit))
		aiMiddleware = append(aiMiddleware, middleware.RateLimiter(limiter))
	}

	// Handlers
	handler := api.NewHandler(svc)

	// Register Routes
	handler.RegisterRoutes(e, aiMiddleware...)

	return e
}
