package projects

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/application/companies"
	"github.com/hitarthkothari9641-coder/vastu/internal/application/notifications"
	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/codes"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

type Service struct {
	DB *gorm.DB
}

type ListFilter struct {
	Status  string
	Page    int
	PerPage int
}

type ListResult struct {
	Projects []models.Project `json:"projects"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

// List returns projects visible to the caller: users see projects they
// commissioned, companies see projects they execute, admins see all.
func (s *Service) List(ctx context.Context, id middleware.Identity, f ListFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 50 {
		f.PerPage = 10
	}

	q := s.DB.WithContext(ctx).Model(&models.Project{})
	switch id.Role {
	case constants.RoleUser:
		q = q.Where("user_id = ?", id.UserID)
	case constants.RoleCompany:
		if id.CompanyID == nil {
			return nil, apperr.New(apperr.Forbidden, "No company profile")
		}
		q = q.Where("company_id = ?", *id.CompanyID)
	case constants.RoleAdmin:
	default:
		return nil, apperr.New(apperr.Forbidden, "Insufficient role")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count projects", err)
	}

	var projects []models.Project
	if err := q.Preload("Company").
		Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).Limit(f.PerPage).
		Find(&projects).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list projects", err)
	}

	pages := int((total + int64(f.PerPage) - 1) / int64(f.PerPage))
	return &ListResult{Projects: projects, Total: total, Page: f.Page, Pages: pages}, nil
}

// Get loads one project with its milestones, payments and warranty. Only the
// commissioning user, the executing company, or an admin may read it.
func (s *Service) Get(ctx context.Context, id middleware.Identity, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.DB.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Warranty").
		Preload("Company").
		Where("project_id = ?", projectID).First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Project not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to load project", err)
	}
	if !canAccess(id, &project) {
		return nil, apperr.New(apperr.Forbidden, "Not your project")
	}
	return &project, nil
}

func canAccess(id middleware.Identity, p *models.Project) bool {
	switch id.Role {
	case constants.RoleAdmin:
		return true
	case constants.RoleUser:
		return p.UserID == id.UserID
	case constants.RoleCompany:
		return id.CompanyID != nil && p.CompanyID == *id.CompanyID
	}
	return false
}

// statusFor maps the currently active milestone onto the project status shown
// to users. Unknown names fall back to in_progress.
func statusFor(milestoneName string) string {
	switch milestoneName {
	case "Planning & Design":
		return models.ProjectPlanning
	case "Material Procurement":
		return models.ProjectProcurement
	case "Quality Inspection", "Final Completion":
		return models.ProjectInspection
	default:
		return models.ProjectInProgress
	}
}

// issueWarranty covers a freshly completed project for the term promised in
// the accepted bid. Bids without a warranty term produce no cover.
func issueWarranty(tx *gorm.DB, project *models.Project, now time.Time) error {
	var bid models.Bid
	if err := tx.Where("bid_id = ?", project.BidID).First(&bid).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to load bid", err)
	}
	if bid.WarrantyMonths <= 0 {
		return nil
	}

	code, err := codes.Next(tx, codes.Warranty)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to generate warranty code", err)
	}
	nextService := now.AddDate(0, 6, 0)
	warranty := models.Warranty{
		ProjectID:             project.ProjectID,
		WarrantyCode:          code,
		StartDate:             now,
		EndDate:               now.AddDate(0, bid.WarrantyMonths, 0),
		Terms:                 bid.WarrantyTerms,
		IsActive:              true,
		NextServiceDate:       &nextService,
		ServiceIntervalMonths: 6,
	}
	if err := tx.Create(&warranty).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to create warranty", err)
	}
	return nil
}

// PayMilestone records a simulated escrow release for one completed milestone.
// The payment row carries the platform commission share; the milestone flips
// to released and the project's paid total moves in step. No gateway sits
// behind this.
func (s *Service) PayMilestone(ctx context.Context, id middleware.Identity, projectID, milestoneID uuid.UUID, amount float64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.Validation, "Amount must be positive")
	}

	var payment *models.Payment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := database.LockForUpdate(tx).
			Where("project_id = ?", projectID).First(&project).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Project not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load project", err)
		}
		if id.Role != constants.RoleAdmin && project.UserID != id.UserID {
			return apperr.New(apperr.Forbidden, "Not your project")
		}

		var milestone models.Milestone
		if err := tx.Where("milestone_id = ? AND project_id = ?", milestoneID, projectID).
			First(&milestone).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Milestone not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load milestone", err)
		}
		if milestone.Status != models.MilestoneCompleted {
			return apperr.New(apperr.Conflict, "Milestone is not completed yet")
		}
		if milestone.PaymentReleased {
			return apperr.New(apperr.Conflict, "Milestone already paid")
		}

		code, err := codes.Next(tx, codes.Payment)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to generate payment code", err)
		}

		now := time.Now().UTC()
		commission := amount * models.PlatformCommissionRate
		payment = &models.Payment{
			PaymentCode:    code,
			ProjectID:      project.ProjectID,
			PayerID:        project.UserID,
			PayeeCompanyID: project.CompanyID,
			MilestoneID:    &milestone.MilestoneID,
			Amount:         amount,
			Commission:     commission,
			NetAmount:      amount - commission,
			PaymentType:    "milestone",
			Status:         models.PaymentReleased,
			CompletedAt:    &now,
		}
		if err := tx.Create(payment).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to record payment", err)
		}

		milestone.PaymentAmount = amount
		milestone.PaymentReleased = true
		if err := tx.Save(&milestone).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update milestone", err)
		}

		project.TotalPaid += amount
		if err := tx.Save(&project).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update project", err)
		}

		var company models.Company
		if err := tx.Where("company_id = ?", project.CompanyID).First(&company).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to load company", err)
		}
		msg := fmt.Sprintf("₹%.0f released for %q on project %s", amount, milestone.Name, project.ProjectCode)
		if err := notifications.Notify(tx, company.UserID, "Payment Released", msg,
			models.NotifyPayment, "payment", payment.PaymentID); err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to notify company", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// CompleteMilestone marks one milestone completed and cascades: the next
// pending milestone by sort order moves to in_progress, progress is recomputed
// from the full milestone set, and at 100% the project itself completes, the
// actual end date is stamped and the company's completed-projects counter is
// bumped under row lock. Milestones only move forward; re-completing one is a
// Conflict.
func (s *Service) CompleteMilestone(ctx context.Context, id middleware.Identity, projectID, milestoneID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(tx).
			Where("project_id = ?", projectID).First(&project).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Project not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load project", err)
		}
		if id.Role != constants.RoleAdmin {
			if id.CompanyID == nil || project.CompanyID != *id.CompanyID {
				return apperr.New(apperr.Forbidden, "Not your project")
			}
		}
		if project.Status == models.ProjectCompleted || project.Status == models.ProjectCancelled {
			return apperr.New(apperr.Conflict, "Project is already closed")
		}

		var milestone models.Milestone
		if err := tx.Where("milestone_id = ? AND project_id = ?", milestoneID, projectID).
			First(&milestone).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Milestone not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load milestone", err)
		}
		if milestone.Status == models.MilestoneCompleted {
			return apperr.New(apperr.Conflict, "Milestone already completed")
		}

		now := time.Now().UTC()
		milestone.Status = models.MilestoneCompleted
		milestone.CompletedDate = &now
		if err := tx.Save(&milestone).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to complete milestone", err)
		}

		var all []models.Milestone
		if err := tx.Where("project_id = ?", projectID).
			Order("sort_order ASC").Find(&all).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to load milestones", err)
		}

		completed := 0
		for i := range all {
			if all[i].Status == models.MilestoneCompleted {
				completed++
			}
		}

		// promote the immediate successor by sort order, and only if it is
		// still pending; earlier skipped milestones stay untouched
		var next *models.Milestone
		for i := range all {
			if all[i].SortOrder > milestone.SortOrder {
				if all[i].Status == models.MilestonePending {
					next = &all[i]
				}
				break
			}
		}
		if next != nil {
			next.Status = models.MilestoneInProgress
			if err := tx.Save(next).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to advance milestone", err)
			}
		}

		if len(all) > 0 {
			project.Progress = int(math.Round(100 * float64(completed) / float64(len(all))))
		} else {
			project.Progress = 0
		}

		if project.Progress >= 100 {
			project.Status = models.ProjectCompleted
			project.ActualEndDate = &now
			err := companies.ApplyStatsDelta(tx, project.CompanyID, func(c *models.Company) {
				c.CompletedProjects++
				c.TotalEarnings += project.TotalCost - project.PlatformCommission
			})
			if err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to update company stats", err)
			}
			if err := issueWarranty(tx, &project, now); err != nil {
				return err
			}
		} else if next != nil {
			project.Status = statusFor(next.Name)
		}
		if err := tx.Save(&project).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update project", err)
		}

		title := "Milestone Completed"
		msg := fmt.Sprintf("%q is done on project %s (%d%% complete)",
			milestone.Name, project.ProjectCode, project.Progress)
		if project.Status == models.ProjectCompleted {
			title = "Project Completed"
			msg = fmt.Sprintf("Project %s has been completed", project.ProjectCode)
		}
		if err := notifications.Notify(tx, project.UserID, title, msg,
			models.NotifyProjectUpdate, "project", project.ProjectID); err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to notify owner", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}
