package quotations

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	quotsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/quotations"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *quotsvc.Service
}

// Create POST /api/quotations
func (h *Handlers) Create(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	var req quotsvc.CreateInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	quotation, err := h.Service.Create(c.Context(), id.UserID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Quotation created", fiber.Map{"quotation": quotation}, nil)
}

// List GET /api/quotations
func (h *Handlers) List(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	f := quotsvc.ListFilter{
		Status:  c.Query("status"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 10),
	}
	result, err := h.Service.List(c.Context(), id.UserID, id.Role, f)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Quotations", result, nil)
}

// Get GET /api/quotations/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	quotationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid quotation ID", fiber.StatusBadRequest, nil)
	}

	detail, err := h.Service.Get(c.Context(), quotationID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Quotation", detail, nil)
}
