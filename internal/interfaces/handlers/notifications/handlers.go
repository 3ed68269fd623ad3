package notifications

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	notifsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/notifications"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *notifsvc.Service
}

// List GET /api/notifications
func (h *Handlers) List(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	result, err := h.Service.List(c.Context(), id.UserID, c.QueryBool("unread"))
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Notifications", result, nil)
}

// MarkReadRequest body. Empty IDs means mark everything read.
type MarkReadRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// MarkRead POST /api/notifications/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	var req MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.MarkRead(c.Context(), id.UserID, req.IDs); err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Notifications marked read", nil, nil)
}
