package users

import (
	"github.com/gofiber/fiber/v2"

	usersvc "github.com/hitarthkothari9641-coder/vastu/internal/application/users"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *usersvc.Service
}

// UpdateProfile PUT /api/users/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	var req usersvc.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.UpdateProfile(c.Context(), id.UserID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Profile updated", fiber.Map{"user": user}, nil)
}

// Dashboard GET /api/users/dashboard
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	dashboard, err := h.Service.GetDashboard(c.Context(), id.UserID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Dashboard", dashboard, nil)
}
