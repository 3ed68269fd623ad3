package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

// Notify writes one notification row inside the caller's transaction.
// Delivery is fire-and-forget: nobody waits on a read receipt, but the row
// commits or rolls back together with the state change that triggered it.
func Notify(tx *gorm.DB, userID uuid.UUID, title, message, kind, refType string, refID uuid.UUID) error {
	n := models.Notification{
		UserID:        userID,
		Title:         title,
		Message:       message,
		Type:          kind,
		ReferenceType: refType,
	}
	if refID != uuid.Nil {
		n.ReferenceID = &refID
	}
	return tx.Create(&n).Error
}

type Service struct {
	DB *gorm.DB
}

type ListResult struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

// List returns the newest 50 notifications for the user plus the unread tally.
func (s *Service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*ListResult, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var items []models.Notification
	if err := q.Order("created_at DESC").Limit(50).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch notifications", err)
	}

	var unread int64
	if err := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&unread).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count notifications", err)
	}

	return &ListResult{Notifications: items, UnreadCount: unread}, nil
}

// MarkRead marks the given notifications (or all of the user's, when ids is
// empty) as read. Only rows owned by the caller are touched.
func (s *Service) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	q := s.DB.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if len(ids) > 0 {
		q = q.Where("notification_id IN ?", ids)
	}
	if err := q.Update("is_read", true).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to mark notifications read", err)
	}
	return nil
}
