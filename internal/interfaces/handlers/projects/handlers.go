package projects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	projsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/projects"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *projsvc.Service
}

// List GET /api/projects
func (h *Handlers) List(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	f := projsvc.ListFilter{
		Status:  c.Query("status"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 10),
	}
	result, err := h.Service.List(c.Context(), *id, f)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Projects", result, nil)
}

// Get GET /api/projects/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project ID", fiber.StatusBadRequest, nil)
	}

	project, err := h.Service.Get(c.Context(), *id, projectID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Project", fiber.Map{"project": project}, nil)
}

// CompleteMilestone POST /api/projects/:id/milestones/:milestoneId/complete
func (h *Handlers) CompleteMilestone(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project ID", fiber.StatusBadRequest, nil)
	}
	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		return response.Error(c, "Invalid milestone ID", fiber.StatusBadRequest, nil)
	}

	project, err := h.Service.CompleteMilestone(c.Context(), *id, projectID, milestoneID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Milestone completed", fiber.Map{"project": project}, nil)
}

// PayMilestoneRequest body.
type PayMilestoneRequest struct {
	Amount float64 `json:"amount"`
}

// PayMilestone POST /api/projects/:id/milestones/:milestoneId/pay
func (h *Handlers) PayMilestone(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project ID", fiber.StatusBadRequest, nil)
	}
	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		return response.Error(c, "Invalid milestone ID", fiber.StatusBadRequest, nil)
	}

	var req PayMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	payment, err := h.Service.PayMilestone(c.Context(), *id, projectID, milestoneID, req.Amount)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Payment released", fiber.Map{"payment": payment}, nil)
}
