package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/healthdesk/internal/domain"
	"github.com/xiaot623/healthdesk/internal/service"
)

// ListServices lists services.
// GET /services?skip=&limit=
func (h *Handler) ListServices(c echo.Context) error {
	ctx := c.Request().Context()

	skip, limit := 0, service.DefaultListLimit
	err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return queryError(c, err)
	}

	services, err := h.service.ListServices(ctx, skip, limit)
	if err != nil {
		return errorJSON(c, err, "fetching services")
	}
	return c.JSON(http.StatusOK, services)
}

// SearchServices searches services by name, location or contact.
// GET /services/search?q=&limit=
func (h *Handler) SearchServices(c echo.Context) error {
	ctx := c.Request().Context()

	var q string
	limit := service.DefaultSearchLimit
	err := echo.QueryParamsBinder(c).
		MustString("q", &q).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return queryError(c, err)
	}

	services, err := h.service.SearchServices(ctx, q, limit)
	if err != nil {
		return errorJSON(c, err, "searching services")
	}
	return c.JSON(http.StatusOK, services)
}

// NearbyServices lists services around a point, nearest first.
// GET /services/nearby?lat=&lon=&radius_km=&limit=
func (h *Handler) NearbyServices(c echo.Context) error {
	ctx := c.Request().Context()

	var lat, lon float64
	radius := service.DefaultRadiusKm
	limit := service.DefaultNearbyLimit
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &lat).
		MustFloat64("lon", &lon).
		Float64("radius_km", &radius).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return queryError(c, err)
	}

	services, err := h.service.NearbyServices(ctx, lat, lon, radius, limit)
	if err != nil {
		return errorJSON(c, err, "fetching nearby services")
	}
	return c.JSON(http.StatusOK, services)
}

// GetService gets a service by ID.
// GET /services/:id
func (h *Handler) GetService(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := serviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid service id"})
	}

	svc, err := h.service.GetService(ctx, id)
	if err != nil {
		return errorJSON(c, err, "fetching service")
	}
	return c.JSON(http.StatusOK, svc)
}

// CreateService creates a service.
// POST /services
func (h *Handler) CreateService(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.Service
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	svc, err := h.service.CreateService(ctx, req)
	if err != nil {
		return errorJSON(c, err, "creating service")
	}
	return c.JSON(http.StatusCreated, svc)
}

// UpdateService partially updates a service.
// PUT /services/:id
func (h *Handler) UpdateService(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := serviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid service id"})
	}

	var patch domain.ServicePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	svc, err := h.service.UpdateService(ctx, id, patch)
	if err != nil {
		return errorJSON(c, err, "updating service")
	}
	return c.JSON(http.StatusOK, svc)
}

// DeleteService deletes a service.
// DELETE /services/:id
func (h *Handler) DeleteService(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := serviceID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid service id"})
	}

	if err := h.service.DeleteService(ctx, id); err != nil {
		return errorJSON(c, err, "deleting service")
	}
	return c.NoContent(http.StatusNoContent)
}

func serviceID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
