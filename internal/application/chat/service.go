package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

type Service struct {
	DB *gorm.DB
}

type OpenRoomInput struct {
	CompanyID   uuid.UUID  `json:"company_id"`
	QuotationID *uuid.UUID `json:"quotation_id"`
	ProjectID   *uuid.UUID `json:"project_id"`
}

// OpenRoom returns the active room between the caller and a company, creating
// it on first contact.
func (s *Service) OpenRoom(ctx context.Context, userID uuid.UUID, in OpenRoomInput) (*models.ChatRoom, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).
		Where("company_id = ?", in.CompanyID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Company not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to load company", err)
	}

	var room models.ChatRoom
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND company_id = ? AND is_active = ?", userID, in.CompanyID, true).
		First(&room).Error
	if err == nil {
		return &room, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load room", err)
	}

	room = models.ChatRoom{
		UserID:      userID,
		CompanyID:   in.CompanyID,
		QuotationID: in.QuotationID,
		ProjectID:   in.ProjectID,
		IsActive:    true,
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create room", err)
	}
	return &room, nil
}

type RoomSummary struct {
	Room        models.ChatRoom     `json:"room"`
	LastMessage *models.ChatMessage `json:"last_message"`
	Unread      int64               `json:"unread"`
}

// ListRooms returns the caller's active rooms with the last message and unread
// count per room. Companies see rooms addressed to their profile; users see
// rooms they opened.
func (s *Service) ListRooms(ctx context.Context, id middleware.Identity) ([]RoomSummary, error) {
	q := s.DB.WithContext(ctx).Preload("User").Preload("Company").Where("is_active = ?", true)
	if id.Role == constants.RoleCompany && id.CompanyID != nil {
		q = q.Where("company_id = ?", *id.CompanyID)
	} else {
		q = q.Where("user_id = ?", id.UserID)
	}

	var rooms []models.ChatRoom
	if err := q.Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list rooms", err)
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summary := RoomSummary{Room: room}

		var last models.ChatMessage
		err := s.DB.WithContext(ctx).
			Where("room_id = ?", room.RoomID).
			Order("created_at DESC").First(&last).Error
		if err == nil {
			summary.LastMessage = &last
		} else if err != gorm.ErrRecordNotFound {
			return nil, apperr.Wrap(apperr.Internal, "Failed to load last message", err)
		}

		if err := s.DB.WithContext(ctx).Model(&models.ChatMessage{}).
			Where("room_id = ? AND sender_id <> ? AND is_read = ?", room.RoomID, id.UserID, false).
			Count(&summary.Unread).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to count unread", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Messages returns a room's messages oldest first and marks the other side's
// messages read.
func (s *Service) Messages(ctx context.Context, id middleware.Identity, roomID uuid.UUID) ([]models.ChatMessage, error) {
	room, err := s.loadRoom(ctx, id, roomID)
	if err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	if err := s.DB.WithContext(ctx).Preload("Sender").
		Where("room_id = ?", room.RoomID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load messages", err)
	}

	if err := s.DB.WithContext(ctx).Model(&models.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = ?", room.RoomID, id.UserID, false).
		Update("is_read", true).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to mark messages read", err)
	}
	return messages, nil
}

// Send appends a message to a room the caller belongs to.
func (s *Service) Send(ctx context.Context, id middleware.Identity, roomID uuid.UUID, text string) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.Validation, "Message cannot be empty")
	}
	room, err := s.loadRoom(ctx, id, roomID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		RoomID:      room.RoomID,
		SenderID:    id.UserID,
		Message:     text,
		MessageType: "text",
	}
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to send message", err)
	}
	return msg, nil
}

func (s *Service) loadRoom(ctx context.Context, id middleware.Identity, roomID uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.DB.WithContext(ctx).
		Where("room_id = ? AND is_active = ?", roomID, true).First(&room).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Room not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to load room", err)
	}

	member := room.UserID == id.UserID ||
		(id.CompanyID != nil && room.CompanyID == *id.CompanyID)
	if !member {
		return nil, apperr.New(apperr.Forbidden, "Not a member of this room")
	}
	return &room, nil
}
