package quotations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/application/notifications"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/codes"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

// BiddingWindow is how long a quotation accepts bids before it is treated as
// expired on read paths.
const BiddingWindow = 30 * 24 * time.Hour

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	ServiceType         string            `json:"service_type"`
	AreaSqft            *float64          `json:"area_sqft"`
	NumRooms            *int              `json:"num_rooms"`
	Location            string            `json:"location"`
	City                string            `json:"city"`
	BudgetMin           *float64          `json:"budget_min"`
	BudgetMax           *float64          `json:"budget_max"`
	BudgetDisplay       string            `json:"budget_display"`
	Timeline            string            `json:"timeline"`
	Urgency             string            `json:"urgency"`
	MaterialPreferences map[string]string `json:"material_preferences"`
	GreenMode           bool              `json:"green_mode"`
	ImageURLs           []string          `json:"image_urls"`
}

// Create opens a new quotation request and fans out a "new request" fact to
// every active, platform-verified company whose service set matches the
// request's service type (or whose service set is empty). Notifications commit
// in the same transaction as the quotation.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*models.QuotationRequest, error) {
	if in.Title == "" {
		return nil, apperr.New(apperr.Validation, "Title is required")
	}
	if in.ServiceType == "" {
		return nil, apperr.New(apperr.Validation, "Service type is required")
	}
	if in.Urgency == "" {
		in.Urgency = "normal"
	}

	prefs, err := json.Marshal(in.MaterialPreferences)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Invalid material preferences", err)
	}

	var quotation *models.QuotationRequest
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := codes.Next(tx, codes.Quotation)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to generate request code", err)
		}

		expires := time.Now().UTC().Add(BiddingWindow)
		quotation = &models.QuotationRequest{
			RequestCode:         code,
			UserID:              ownerID,
			Title:               in.Title,
			Description:         in.Description,
			ServiceType:         in.ServiceType,
			AreaSqft:            in.AreaSqft,
			NumRooms:            in.NumRooms,
			Location:            in.Location,
			City:                in.City,
			BudgetMin:           in.BudgetMin,
			BudgetMax:           in.BudgetMax,
			BudgetDisplay:       in.BudgetDisplay,
			Timeline:            in.Timeline,
			Urgency:             in.Urgency,
			MaterialPreferences: datatypes.JSON(prefs),
			GreenMode:           in.GreenMode,
			Status:              models.QuotationActive,
			ExpiresAt:           &expires,
		}
		if err := tx.Create(quotation).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to create quotation", err)
		}

		for _, url := range in.ImageURLs {
			img := models.QuotationImage{QuotationID: quotation.QuotationID, URL: url, FileType: "image"}
			if err := tx.Create(&img).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to attach reference image", err)
			}
		}

		return s.broadcast(tx, quotation, in)
	})
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

// broadcast notifies matching verified companies about the new request.
func (s *Service) broadcast(tx *gorm.DB, q *models.QuotationRequest, in CreateInput) error {
	var companies []models.Company
	if err := tx.Preload("Services").
		Where("is_active = ? AND platform_verified = ?", true, true).
		Find(&companies).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load companies", err)
	}

	msg := fmt.Sprintf("New request: %s - %s", in.Title, in.BudgetDisplay)
	for _, company := range companies {
		if !servicesMatch(company.Services, in.ServiceType) {
			continue
		}
		if err := notifications.Notify(tx, company.UserID, "New Quotation Request", msg,
			models.NotifyNewQuotation, "quotation", q.QuotationID); err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to notify companies", err)
		}
	}
	return nil
}

// servicesMatch: companies with an empty taxonomy receive everything.
func servicesMatch(services []models.Service, serviceType string) bool {
	if len(services) == 0 {
		return true
	}
	for _, s := range services {
		if s.Name == serviceType {
			return true
		}
	}
	return false
}

type ListFilter struct {
	Status  string
	Page    int
	PerPage int
}

type ListResult struct {
	Quotations []models.QuotationRequest `json:"quotations"`
	Total      int64                     `json:"total"`
}

// List is role filtered: end-users see their own requests, companies see only
// active ones, admins see everything. Newest first, stable across pages.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, role string, f ListFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}

	q := s.DB.WithContext(ctx).Model(&models.QuotationRequest{})
	switch role {
	case constants.RoleUser:
		q = q.Where("user_id = ?", callerID)
	case constants.RoleCompany:
		q = q.Where("status = ?", models.QuotationActive)
	case constants.RoleAdmin:
		// unrestricted
	default:
		return nil, apperr.New(apperr.Forbidden, "Access denied")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count quotations", err)
	}

	var items []models.QuotationRequest
	if err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).Limit(f.PerPage).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch quotations", err)
	}
	return &ListResult{Quotations: items, Total: total}, nil
}

type Detail struct {
	models.QuotationRequest
	Bids []models.Bid `json:"bids"`
}

// Get returns one quotation with its bids and reference images.
func (s *Service) Get(ctx context.Context, quotationID uuid.UUID) (*Detail, error) {
	var quotation models.QuotationRequest
	if err := s.DB.WithContext(ctx).Preload("ReferenceImages").
		Where("quotation_id = ?", quotationID).First(&quotation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Quotation not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch quotation", err)
	}

	var bids []models.Bid
	if err := s.DB.WithContext(ctx).Preload("Company").
		Where("quotation_id = ?", quotationID).Order("created_at ASC").Find(&bids).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch bids", err)
	}

	return &Detail{QuotationRequest: quotation, Bids: bids}, nil
}
