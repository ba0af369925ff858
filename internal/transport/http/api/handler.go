// Package api provides the public HTTP handlers.
package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/healthdesk/internal/domain"
	"github.com/xiaot623/healthdesk/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the routes with the echo server. aiMiddleware is
// applied to the /ai group only.
func (h *Handler) RegisterRoutes(e *echo.Echo, aiMiddleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.POST("/triage", h.Triage)

	// Service directory
	e.GET("/services", h.ListServices)
	e.GET("/services/search", h.SearchServices)
	e.GET("/services/nearby", h.NearbyServices)
	e.GET("/services/:id", h.GetService)
	e.POST("/services", h.CreateService)
	e.PUT("/services/:id", h.UpdateService)
	e.DELETE("/services/:id", h.DeleteService)

	// AI
	ai := e.Group("/ai", aiMiddleware...)
	ai.POST("/triage-advice", h.TriageAdvice)
	ai.POST("/chat", h.Chat)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "healthdesk API is running",
	})
}

// errorJSON maps service errors to status codes.
func errorJSON(c echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "service not found"})
	default:
		log.Printf("ERROR: %s: %v", what, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "error " + what})
	}
}

func queryError(c echo.Context, err error) error {
	var be *echo.BindingError
	if errors.As(err, &be) && be.Field != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid query parameter %q", be.Field)})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query parameters"})
}
