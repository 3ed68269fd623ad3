package designer

import (
	"github.com/gofiber/fiber/v2"

	dsgnsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/designer"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *dsgnsvc.Service
}

// Chat POST /api/ai-designer/chat
func (h *Handlers) Chat(c *fiber.Ctx) error {
	var req dsgnsvc.ChatInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	reply, err := h.Service.Chat(c.Context(), req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Reply", fiber.Map{"reply": reply}, nil)
}

// GenerateImage POST /api/ai-designer/generate-image
func (h *Handlers) GenerateImage(c *fiber.Ctx) error {
	var req dsgnsvc.ImageInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	result, err := h.Service.GenerateImage(c.Context(), req)
	if err != nil {
		// a loading upstream still reports its estimated wait
		if result != nil && result.EstimatedTime > 0 {
			return response.Error(c, apperr.Message(err), apperr.StatusCode(err),
				fiber.Map{"estimated_time": result.EstimatedTime})
		}
		return response.AppError(c, err)
	}
	return response.Success(c, "Image generated", result, nil)
}

// SuggestPromptRequest body.
type SuggestPromptRequest struct {
	RoomType string `json:"room_type"`
	Style    string `json:"style"`
}

// SuggestPrompt POST /api/ai-designer/suggest-prompt
func (h *Handlers) SuggestPrompt(c *fiber.Ctx) error {
	var req SuggestPromptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.RoomType == "" {
		req.RoomType = "living room"
	}

	suggestions := h.Service.SuggestPrompts(req.RoomType, req.Style)
	return response.Success(c, "Suggestions", fiber.Map{"suggestions": suggestions}, nil)
}
