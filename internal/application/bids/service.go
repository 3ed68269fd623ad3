package bids

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/application/notifications"
	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/codes"
)

type Service struct {
	DB *gorm.DB
}

// SubmitInput is the bid payload. QuotationID comes from the route, never the
// body.
type SubmitInput struct {
	QuotationID       uuid.UUID `json:"-"`
	TotalPrice        float64   `json:"total_price"`
	LaborCost         float64   `json:"labor_cost"`
	MaterialCost      float64   `json:"material_cost"`
	OverheadCost      float64   `json:"overhead_cost"`
	TimelineDays      *int      `json:"timeline_days"`
	TimelineDisplay   string    `json:"timeline_display"`
	WarrantyMonths    int       `json:"warranty_months"`
	WarrantyTerms     string    `json:"warranty_terms"`
	MaterialsProposed []string  `json:"materials_proposed"`
	ScopeOfWork       string    `json:"scope_of_work"`
	Notes             string    `json:"notes"`
}

// Submit attaches a new pending bid to an open quotation. One bid per company
// per quotation: prechecked here and backed by the unique index on
// (quotation_id, company_id). The quotation owner is notified in the same
// transaction.
func (s *Service) Submit(ctx context.Context, companyID uuid.UUID, in SubmitInput) (*models.Bid, error) {
	if in.TotalPrice <= 0 {
		return nil, apperr.New(apperr.Validation, "Total price is required")
	}

	materials, err := json.Marshal(in.MaterialsProposed)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Invalid materials list", err)
	}

	var bid *models.Bid
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quotation models.QuotationRequest
		if err := database.LockForUpdate(tx).
			Where("quotation_id = ?", in.QuotationID).First(&quotation).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Quotation not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load quotation", err)
		}
		if !quotation.IsOpenForBids(time.Now().UTC()) {
			return apperr.New(apperr.Conflict, "Quotation is not open for bidding")
		}

		var existing int64
		if err := tx.Model(&models.Bid{}).
			Where("quotation_id = ? AND company_id = ?", in.QuotationID, companyID).
			Count(&existing).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to check existing bids", err)
		}
		if existing > 0 {
			return apperr.New(apperr.Conflict, "You have already bid on this quotation")
		}

		code, err := codes.Next(tx, codes.Bid)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to generate bid code", err)
		}

		bid = &models.Bid{
			BidCode:           code,
			QuotationID:       in.QuotationID,
			CompanyID:         companyID,
			TotalPrice:        in.TotalPrice,
			LaborCost:         in.LaborCost,
			MaterialCost:      in.MaterialCost,
			OverheadCost:      in.OverheadCost,
			TimelineDays:      in.TimelineDays,
			TimelineDisplay:   in.TimelineDisplay,
			WarrantyMonths:    in.WarrantyMonths,
			WarrantyTerms:     in.WarrantyTerms,
			MaterialsProposed: datatypes.JSON(materials),
			ScopeOfWork:       in.ScopeOfWork,
			Notes:             in.Notes,
			Status:            models.BidPending,
		}
		if err := tx.Create(bid).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to create bid", err)
		}

		quotation.TotalBids++
		if err := tx.Save(&quotation).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update bid counter", err)
		}

		var company models.Company
		if err := tx.Where("company_id = ?", companyID).First(&company).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to load company", err)
		}
		msg := fmt.Sprintf("%s submitted a bid of ₹%.0f", company.Name, in.TotalPrice)
		if err := notifications.Notify(tx, quotation.UserID, "New Bid Received", msg,
			models.NotifyBidReceived, "bid", bid.BidID); err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to notify owner", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bid, nil
}

// Accept awards the quotation to one bid. Everything happens in a single
// transaction with the quotation row locked: the bid flips to accepted, every
// other pending bid flips to rejected, the quotation closes as awarded, and
// the project spawns with its five-step milestone template. A second accept on
// the same quotation sees status != active and fails with Conflict before any
// write.
func (s *Service) Accept(ctx context.Context, userID, bidID uuid.UUID) (*models.Project, error) {
	var project *models.Project
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.Where("bid_id = ?", bidID).First(&bid).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Bid not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load bid", err)
		}

		var quotation models.QuotationRequest
		if err := database.LockForUpdate(tx).
			Where("quotation_id = ?", bid.QuotationID).First(&quotation).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Quotation not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load quotation", err)
		}
		if quotation.UserID != userID {
			return apperr.New(apperr.Forbidden, "Not your quotation")
		}
		if quotation.Status != models.QuotationActive {
			return apperr.New(apperr.Conflict, "Quotation already awarded")
		}
		if bid.Status != models.BidPending {
			return apperr.New(apperr.Conflict, "Bid is no longer pending")
		}

		bid.Status = models.BidAccepted
		if err := tx.Save(&bid).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to accept bid", err)
		}

		quotation.Status = models.QuotationAwarded
		quotation.AwardedBidID = &bid.BidID
		if err := tx.Save(&quotation).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to award quotation", err)
		}

		if err := tx.Model(&models.Bid{}).
			Where("quotation_id = ? AND bid_id <> ? AND status = ?",
				quotation.QuotationID, bid.BidID, models.BidPending).
			Update("status", models.BidRejected).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to reject competing bids", err)
		}

		var err error
		project, err = s.spawnProject(tx, &quotation, &bid)
		if err != nil {
			return err
		}

		var company models.Company
		if err := tx.Where("company_id = ?", bid.CompanyID).First(&company).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to load company", err)
		}
		msg := fmt.Sprintf("Your bid for %q has been accepted!", quotation.Title)
		if err := notifications.Notify(tx, company.UserID, "Bid Accepted", msg,
			models.NotifyBidAccepted, "project", project.ProjectID); err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to notify company", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// spawnProject creates the project and its default milestone schedule.
func (s *Service) spawnProject(tx *gorm.DB, quotation *models.QuotationRequest, bid *models.Bid) (*models.Project, error) {
	code, err := codes.Next(tx, codes.Project)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to generate project code", err)
	}

	days := models.DefaultTimelineDays
	if bid.TimelineDays != nil && *bid.TimelineDays > 0 {
		days = *bid.TimelineDays
	}
	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, days)

	project := &models.Project{
		ProjectCode:        code,
		QuotationID:        quotation.QuotationID,
		BidID:              bid.BidID,
		CompanyID:          bid.CompanyID,
		UserID:             quotation.UserID,
		Title:              quotation.Title,
		Description:        quotation.Description,
		TotalCost:          bid.TotalPrice,
		Status:             models.ProjectPlanning,
		Progress:           0,
		StartDate:          &start,
		ExpectedEndDate:    &end,
		PlatformCommission: bid.TotalPrice * models.PlatformCommissionRate,
	}
	if err := tx.Create(project).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create project", err)
	}

	for i, name := range models.DefaultMilestones {
		ms := models.Milestone{
			ProjectID: project.ProjectID,
			Name:      name,
			Status:    models.MilestonePending,
			SortOrder: i,
		}
		if err := tx.Create(&ms).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to create milestones", err)
		}
	}
	return project, nil
}

// Reject flips one pending bid to rejected. The caller must own the bid's
// quotation. No cascading effects.
func (s *Service) Reject(ctx context.Context, userID, bidID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.Where("bid_id = ?", bidID).First(&bid).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Bid not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load bid", err)
		}

		var quotation models.QuotationRequest
		if err := tx.Where("quotation_id = ?", bid.QuotationID).First(&quotation).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to load quotation", err)
		}
		if quotation.UserID != userID {
			return apperr.New(apperr.Forbidden, "Not your quotation")
		}
		if bid.Status != models.BidPending {
			return apperr.New(apperr.Conflict, "Bid is no longer pending")
		}

		bid.Status = models.BidRejected
		if err := tx.Save(&bid).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to reject bid", err)
		}
		return nil
	})
}
