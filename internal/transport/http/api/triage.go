package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// Triage classifies a symptom with the keyword rules.
// POST /triage
func (h *Handler) Triage(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.TriageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.service.Triage(ctx, req.Symptom)
	if err != nil {
		return errorJSON(c, err, "processing triage request")
	}
	return c.JSON(http.StatusOK, result)
}
