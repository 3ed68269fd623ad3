package companies

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	compsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/companies"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *compsvc.Service
}

// List GET /api/companies
func (h *Handlers) List(c *fiber.Ctx) error {
	f := compsvc.ListFilter{
		City:    c.Query("city"),
		Service: c.Query("service"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 12),
	}
	result, err := h.Service.List(c.Context(), f)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Companies", result, nil)
}

// Get GET /api/companies/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid company ID", fiber.StatusBadRequest, nil)
	}

	company, err := h.Service.Get(c.Context(), companyID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Company", fiber.Map{"company": company}, nil)
}

// UpdateProfile PUT /api/companies/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	var req compsvc.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	company, err := h.Service.UpdateProfile(c.Context(), id.UserID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Profile updated", fiber.Map{"company": company}, nil)
}

// Dashboard GET /api/companies/dashboard
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	dashboard, err := h.Service.GetDashboard(c.Context(), id.UserID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Dashboard", dashboard, nil)
}
