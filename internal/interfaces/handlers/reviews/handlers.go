package reviews

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	revsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/reviews"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *revsvc.Service
}

// Create POST /api/reviews
func (h *Handlers) Create(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	var req revsvc.CreateInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	review, err := h.Service.Create(c.Context(), id.UserID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Review submitted", fiber.Map{"review": review}, nil)
}

// ListForCompany GET /api/reviews/company/:id
func (h *Handlers) ListForCompany(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid company ID", fiber.StatusBadRequest, nil)
	}

	result, err := h.Service.ListForCompany(c.Context(), companyID, c.QueryInt("page", 1))
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Reviews", result, nil)
}
