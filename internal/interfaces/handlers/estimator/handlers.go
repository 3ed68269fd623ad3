package estimator

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	estsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/estimator"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *estsvc.Service
}

// Estimate POST /api/ai-estimate
// Anonymous callers are allowed; a session just attributes the log entry.
func (h *Handlers) Estimate(c *fiber.Ctx) error {
	var req estsvc.Input
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	var userID *uuid.UUID
	if id := middleware.GetIdentity(c); id != nil {
		userID = &id.UserID
	}

	estimate, err := h.Service.Estimate(c.Context(), userID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Estimate", fiber.Map{"estimate": estimate}, nil)
}
