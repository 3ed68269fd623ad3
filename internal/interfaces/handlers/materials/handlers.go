package materials

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	matsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/materials"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *matsvc.Service
}

// List GET /api/materials
func (h *Handlers) List(c *fiber.Ctx) error {
	f := matsvc.ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		City:     c.Query("city"),
		EcoOnly:  c.QueryBool("eco"),
	}
	if f.Category == "All" {
		f.Category = ""
	}

	materials, err := h.Service.List(c.Context(), f)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Materials", fiber.Map{"materials": materials}, nil)
}

// History GET /api/materials/:id/history
func (h *Handlers) History(c *fiber.Ctx) error {
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid material ID", fiber.StatusBadRequest, nil)
	}

	material, history, err := h.Service.History(c.Context(), materialID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Price history", fiber.Map{
		"material": material,
		"history":  history,
	}, nil)
}

// Categories GET /api/materials/categories
func (h *Handlers) Categories(c *fiber.Ctx) error {
	categories, err := h.Service.Categories(c.Context())
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Categories", fiber.Map{"categories": categories}, nil)
}
