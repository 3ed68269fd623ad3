package feed

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	feedsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/feed"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *feedsvc.Service
}

// List GET /api/feed
func (h *Handlers) List(c *fiber.Ctx) error {
	f := feedsvc.ListFilter{
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PerPage:  c.QueryInt("per_page", 12),
	}
	result, err := h.Service.List(c.Context(), f)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Feed", result, nil)
}

// Create POST /api/feed
func (h *Handlers) Create(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)
	if id.CompanyID == nil {
		return response.Error(c, "No company profile", fiber.StatusForbidden, nil)
	}

	var req feedsvc.CreateInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	post, err := h.Service.Create(c.Context(), *id.CompanyID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Post created", fiber.Map{"post": post}, nil)
}

// ToggleLike POST /api/feed/:id/like
func (h *Handlers) ToggleLike(c *fiber.Ctx) error {
	return h.toggle(c, h.Service.ToggleLike, "liked")
}

// ToggleSave POST /api/feed/:id/save
func (h *Handlers) ToggleSave(c *fiber.Ctx) error {
	return h.toggle(c, h.Service.ToggleSave, "saved")
}

func (h *Handlers) toggle(
	c *fiber.Ctx,
	fn func(ctx context.Context, userID, postID uuid.UUID) (bool, int, error),
	key string,
) error {
	id := middleware.GetIdentity(c)

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid post ID", fiber.StatusBadRequest, nil)
	}

	active, count, err := fn(c.Context(), id.UserID, postID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Updated", fiber.Map{key: active, "count": count}, nil)
}
