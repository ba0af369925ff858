package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// TriageAdvice returns AI generated triage advice. Provider failures still
// answer 200 with a static advice text.
// POST /ai/triage-advice
func (h *Handler) TriageAdvice(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.TriageAdviceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.TriageAdvice(ctx, req)
	if err != nil {
		return errorJSON(c, err, "generating triage advice")
	}
	return c.JSON(http.StatusOK, resp)
}

// Chat continues a health information conversation.
// POST /ai/chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.Chat(ctx, req)
	if err != nil {
		return errorJSON(c, err, "processing chat")
	}
	return c.JSON(http.StatusOK, resp)
}
