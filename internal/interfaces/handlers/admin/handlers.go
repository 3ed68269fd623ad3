package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	adminsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/admin"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *adminsvc.Service
}

// Stats GET /api/admin/stats
func (h *Handlers) Stats(c *fiber.Ctx) error {
	stats, err := h.Service.Stats(c.Context())
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Platform stats", stats, nil)
}

// ListUsers GET /api/admin/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	f := adminsvc.UserListFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
	}
	result, err := h.Service.ListUsers(c.Context(), f)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Users", result, nil)
}

// ToggleUserStatus POST /api/admin/users/:id/toggle-status
func (h *Handlers) ToggleUserStatus(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user ID", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.ToggleUserStatus(c.Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	msg := "User suspended"
	if user.IsActive {
		msg = "User activated"
	}
	return response.Success(c, msg, fiber.Map{"user": user}, nil)
}

// VerifyCompanyRequest body; action is "approve" or "reject".
type VerifyCompanyRequest struct {
	Action string `json:"action"`
}

// VerifyCompany POST /api/admin/companies/:id/verify
func (h *Handlers) VerifyCompany(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid company ID", fiber.StatusBadRequest, nil)
	}

	var req VerifyCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	company, err := h.Service.VerifyCompany(c.Context(), companyID, req.Action != "reject")
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Company verification updated", fiber.Map{"company": company}, nil)
}

// ListReports GET /api/admin/reports
func (h *Handlers) ListReports(c *fiber.Ctx) error {
	reports, err := h.Service.ListReports(c.Context(), c.Query("status"))
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Reports", fiber.Map{"reports": reports}, nil)
}

// ResolveReportRequest body.
type ResolveReportRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ResolveReport POST /api/admin/reports/:id/resolve
func (h *Handlers) ResolveReport(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid report ID", fiber.StatusBadRequest, nil)
	}

	var req ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	report, err := h.Service.ResolveReport(c.Context(), id.UserID, reportID, req.Status, req.Notes)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Report resolved", fiber.Map{"report": report}, nil)
}

// ListProjects GET /api/admin/projects
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	result, err := h.Service.ListProjects(c.Context(), c.Query("status"), c.QueryInt("page", 1))
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Projects", result, nil)
}
