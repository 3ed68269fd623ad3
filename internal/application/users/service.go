package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

type Service struct {
	DB *gorm.DB
}

type UpdateProfileInput struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile patches the caller's own mutable fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to load user", err)
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, apperr.New(apperr.Validation, "Full name cannot be empty")
		}
		user.FullName = name
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update user", err)
	}
	return &user, nil
}

type Dashboard struct {
	ActiveQuotations  int64                 `json:"active_quotations"`
	TotalBidsReceived int64                 `json:"total_bids_received"`
	ActiveProjects    int64                 `json:"active_projects"`
	CompletedProjects int64                 `json:"completed_projects"`
	Notifications     []models.Notification `json:"notifications"`
}

// GetDashboard returns the homeowner's summary counters plus the latest unread
// notifications.
func (s *Service) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	db := s.DB.WithContext(ctx)
	d := &Dashboard{}

	if err := db.Model(&models.QuotationRequest{}).
		Where("user_id = ? AND status = ?", userID, models.QuotationActive).
		Count(&d.ActiveQuotations).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count quotations", err)
	}
	if err := db.Model(&models.Bid{}).
		Joins("JOIN quotation_requests q ON q.quotation_id = bids.quotation_id").
		Where("q.user_id = ?", userID).
		Count(&d.TotalBidsReceived).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count bids", err)
	}
	if err := db.Model(&models.Project{}).
		Where("user_id = ? AND status NOT IN ?", userID,
			[]string{models.ProjectCompleted, models.ProjectCancelled}).
		Count(&d.ActiveProjects).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count projects", err)
	}
	if err := db.Model(&models.Project{}).
		Where("user_id = ? AND status = ?", userID, models.ProjectCompleted).
		Count(&d.CompletedProjects).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count projects", err)
	}
	if err := db.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").Limit(5).
		Find(&d.Notifications).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to load notifications", err)
	}
	return d, nil
}
