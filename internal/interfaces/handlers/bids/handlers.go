package bids

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bidsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/bids"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

type Handlers struct {
	Service *bidsvc.Service
}

// Submit POST /api/quotations/:id/bids
func (h *Handlers) Submit(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)
	if id.CompanyID == nil {
		return response.Error(c, "No company profile", fiber.StatusForbidden, nil)
	}

	quotationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid quotation ID", fiber.StatusBadRequest, nil)
	}

	var req bidsvc.SubmitInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	req.QuotationID = quotationID

	bid, err := h.Service.Submit(c.Context(), *id.CompanyID, req)
	if err != nil {
		return response.AppError(c, err)
	}
	return response.SuccessCreated(c, "Bid submitted", fiber.Map{"bid": bid}, nil)
}

// Accept POST /api/bids/:id/accept
func (h *Handlers) Accept(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	bidID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid bid ID", fiber.StatusBadRequest, nil)
	}

	project, err := h.Service.Accept(c.Context(), id.UserID, bidID)
	if err != nil {
		return response.AppError(c, err)
	}
	log.Info().Str("bid_id", bidID.String()).
		Str("project_code", project.ProjectCode).Msg("bid accepted, project created")

	return response.SuccessCreated(c, "Bid accepted", fiber.Map{"project": project}, nil)
}

// Reject POST /api/bids/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	id := middleware.GetIdentity(c)

	bidID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid bid ID", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.Reject(c.Context(), id.UserID, bidID); err != nil {
		return response.AppError(c, err)
	}
	return response.Success(c, "Bid rejected", nil, nil)
}
