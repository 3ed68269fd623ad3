package chat

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	chatsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/chat"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *chatsvc.Service
}

// OpenRoom POST /api/chat/rooms
func (h *Handlers) OpenRoom(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	var req chatsvc.OpenRoomInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	room, err := h.Service.OpenRoom(c.Context(), id.UserID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Room", fiber.Map{"room": room}, nil)
}

// ListRooms GET /api/chat/rooms
func (h *Handlers) ListRooms(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	rooms, err := h.Service.ListRooms(c.Context(), *id)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Rooms", fiber.Map{"rooms": rooms}, nil)
}

// Messages GET /api/chat/rooms/:id/messages
func (h *Handlers) Messages(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid room ID", fiber.StatusBadRequest, nil)
	}

	messages, err := h.Service.Messages(c.Context(), *id, roomID)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Messages", fiber.Map{"messages": messages}, nil)
}

// SendRequest body.
type SendRequest struct {
	Message string `json:"message"`
}

// Send POST /api/chat/rooms/:id/messages
func (h *Handlers) Send(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid room ID", fiber.StatusBadRequest, nil)
	}

	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	msg, err := h.Service.Send(c.Context(), *id, roomID, req.Message)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Message sent", fiber.Map{"chat_message": msg}, nil)
}
