package admin

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/application/notifications"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

type Service struct {
	DB *gorm.DB
}

type PlatformStats struct {
	TotalUsers         int64   `json:"total_users"`
	TotalCompanies     int64   `json:"total_companies"`
	ActiveProjects     int64   `json:"active_projects"`
	CompletedProjects  int64   `json:"completed_projects"`
	TotalQuotations    int64   `json:"total_quotations"`
	TotalBids          int64   `json:"total_bids"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalCommission    float64 `json:"total_commission"`
	AvgQuotationValue  float64 `json:"avg_quotation_value"`
	ProjectSuccessRate float64 `json:"project_success_rate"`
	Disputes           int64   `json:"disputes"`
}

// Stats computes the live platform counters shown on the admin dashboard.
func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	db := s.DB.WithContext(ctx)
	stats := &PlatformStats{}

	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&models.User{}).Where("role = ?", constants.RoleUser)},
		{&stats.TotalCompanies, db.Model(&models.Company{})},
		{&stats.ActiveProjects, db.Model(&models.Project{}).
			Where("status NOT IN ?", []string{models.ProjectCompleted, models.ProjectCancelled})},
		{&stats.CompletedProjects, db.Model(&models.Project{}).
			Where("status = ?", models.ProjectCompleted)},
		{&stats.TotalQuotations, db.Model(&models.QuotationRequest{})},
		{&stats.TotalBids, db.Model(&models.Bid{})},
		{&stats.Disputes, db.Model(&models.Report{}).Where("status = ?", models.ReportOpen)},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to compute stats", err)
		}
	}

	settled := []string{models.PaymentCompleted, models.PaymentReleased}
	if err := db.Model(&models.Payment{}).Where("status IN ?", settled).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to compute revenue", err)
	}
	if err := db.Model(&models.Payment{}).Where("status IN ?", settled).
		Select("COALESCE(SUM(commission), 0)").Scan(&stats.TotalCommission).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to compute commission", err)
	}

	var avgBid float64
	if err := db.Model(&models.Bid{}).
		Select("COALESCE(AVG(total_price), 0)").Scan(&avgBid).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to compute averages", err)
	}
	stats.AvgQuotationValue = math.Round(avgBid)

	denom := stats.CompletedProjects + stats.ActiveProjects
	if denom < 1 {
		denom = 1
	}
	stats.ProjectSuccessRate = math.Round(float64(stats.CompletedProjects)/float64(denom)*1000) / 10
	return stats, nil
}

type UserListFilter struct {
	Role   string
	Status string
	Page   int
}

type UserListResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
	Pages int           `json:"pages"`
}

// ListUsers pages through all accounts, optionally narrowed by role or
// active/suspended status.
func (s *Service) ListUsers(ctx context.Context, f UserListFilter) (*UserListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	const perPage = 20

	q := s.DB.WithContext(ctx).Model(&models.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	switch f.Status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "suspended":
		q = q.Where("is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count users", err)
	}

	var users []models.User
	if err := q.Order("created_at DESC").
		Offset((f.Page - 1) * perPage).Limit(perPage).
		Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list users", err)
	}

	pages := int((total + perPage - 1) / perPage)
	return &UserListResult{Users: users, Total: total, Pages: pages}, nil
}

// ToggleUserStatus flips one account between active and suspended.
func (s *Service) ToggleUserStatus(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to load user", err)
	}

	user.IsActive = !user.IsActive
	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update user", err)
	}
	return &user, nil
}

// VerifyCompany approves or rejects a pending company and notifies its owner.
func (s *Service) VerifyCompany(ctx context.Context, companyID uuid.UUID, approve bool) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).First(&company).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Company not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load company", err)
		}

		title := "Verification Approved"
		msg := "Your company has been verified. You can now receive quotations and submit bids."
		if approve {
			company.VerificationStatus = models.VerificationApproved
			company.PlatformVerified = true
			company.GstVerified = true
		} else {
			company.VerificationStatus = models.VerificationRejected
			company.PlatformVerified = false
			title = "Verification Rejected"
			msg = "Your company verification was rejected. Please update your details and reapply."
		}
		if err := tx.Save(&company).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update company", err)
		}
		return notifications.Notify(tx, company.UserID, title, msg,
			models.NotifySystem, "company", company.CompanyID)
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// ListReports returns the moderation queue for one status, newest first.
func (s *Service) ListReports(ctx context.Context, status string) ([]models.Report, error) {
	if status == "" {
		status = models.ReportOpen
	}
	var reports []models.Report
	if err := s.DB.WithContext(ctx).Preload("Reporter").
		Where("status = ?", status).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list reports", err)
	}
	return reports, nil
}

// ResolveReport closes a report with the resolving admin's verdict.
func (s *Service) ResolveReport(ctx context.Context, adminID, reportID uuid.UUID, status, notes string) (*models.Report, error) {
	if status == "" {
		status = models.ReportResolved
	}
	if status != models.ReportResolved && status != models.ReportDismissed &&
		status != models.ReportInvestigating {
		return nil, apperr.New(apperr.Validation, "Invalid report status")
	}

	var report models.Report
	if err := s.DB.WithContext(ctx).Where("report_id = ?", reportID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Report not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to load report", err)
	}

	now := time.Now().UTC()
	report.Status = status
	report.AdminNotes = notes
	report.ResolvedBy = &adminID
	report.ResolvedAt = &now
	if err := s.DB.WithContext(ctx).Save(&report).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to resolve report", err)
	}
	return &report, nil
}

type ProjectListResult struct {
	Projects []models.Project `json:"projects"`
	Total    int64            `json:"total"`
}

// ListProjects gives admins oversight of every project on the platform.
func (s *Service) ListProjects(ctx context.Context, status string, page int) (*ProjectListResult, error) {
	if page < 1 {
		page = 1
	}
	const perPage = 20

	q := s.DB.WithContext(ctx).Model(&models.Project{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count projects", err)
	}

	var projects []models.Project
	if err := q.Preload("Company").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&projects).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list projects", err)
	}
	return &ProjectListResult{Projects: projects, Total: total}, nil
}
