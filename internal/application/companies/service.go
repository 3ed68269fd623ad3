package companies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

type Service struct {
	DB *gorm.DB
}

// ApplyStatsDelta mutates a company's denormalized aggregates under row lock.
// Every write to rating/total_reviews/completed_projects/success_rate/
// total_earnings goes through here, inside the transaction that triggered it,
// so concurrent reviews and completions cannot lose updates.
func ApplyStatsDelta(tx *gorm.DB, companyID uuid.UUID, apply func(*models.Company)) error {
	var company models.Company
	if err := database.LockForUpdate(tx).Where("company_id = ?", companyID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.New(apperr.NotFound, "Company not found")
		}
		return apperr.Wrap(apperr.Internal, "Failed to load company", err)
	}
	apply(&company)
	if err := tx.Save(&company).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to update company stats", err)
	}
	return nil
}

type ListFilter struct {
	City    string
	Service string
	Page    int
	PerPage int
}

type ListResult struct {
	Companies []models.Company `json:"companies"`
	Total     int64            `json:"total"`
}

// List returns platform-verified active companies, newest rating first.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}

	q := s.DB.WithContext(ctx).Model(&models.Company{}).
		Where("is_active = ? AND platform_verified = ?", true, true)
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Service != "" {
		q = q.Joins("JOIN company_services cs ON cs.company_id = companies.company_id").
			Joins("JOIN services sv ON sv.service_id = cs.service_id").
			Where("sv.name = ?", f.Service)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count companies", err)
	}

	var items []models.Company
	if err := q.Preload("Services").Order("rating DESC").
		Offset((f.Page - 1) * f.PerPage).Limit(f.PerPage).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch companies", err)
	}
	return &ListResult{Companies: items, Total: total}, nil
}

// Get returns one company with its services.
func (s *Service) Get(ctx context.Context, companyID uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).Preload("Services").
		Where("company_id = ?", companyID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Company not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch company", err)
	}
	return &company, nil
}

// ByUser returns the company owned by the given user.
func (s *Service) ByUser(ctx context.Context, userID uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Company profile not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch company", err)
	}
	return &company, nil
}

type UpdateProfileInput struct {
	Name            *string
	Description     *string
	Location        *string
	City            *string
	State           *string
	ExperienceYears *int
	Website         *string
	LogoURL         *string
	Services        []string
}

// UpdateProfile edits the caller's own company profile. Denormalized stats are
// not editable here.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.Company, error) {
	company, err := s.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Location != nil {
		company.Location = *in.Location
	}
	if in.City != nil {
		company.City = *in.City
	}
	if in.State != nil {
		company.State = *in.State
	}
	if in.ExperienceYears != nil {
		company.ExperienceYears = *in.ExperienceYears
	}
	if in.Website != nil {
		company.Website = in.Website
	}
	if in.LogoURL != nil {
		company.LogoURL = in.LogoURL
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(company).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update company", err)
		}
		if in.Services != nil {
			var services []models.Service
			if err := tx.Where("name IN ?", in.Services).Find(&services).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to resolve services", err)
			}
			if err := tx.Model(company).Association("Services").Replace(services); err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to update company services", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

type Dashboard struct {
	PendingBids    int64   `json:"pending_bids"`
	ActiveProjects int64   `json:"active_projects"`
	Completed      int     `json:"completed_projects"`
	Rating         float64 `json:"rating"`
	TotalEarnings  float64 `json:"total_earnings"`
}

// GetDashboard aggregates headline numbers for the company home screen.
func (s *Service) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	company, err := s.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pendingBids int64
	if err := s.DB.WithContext(ctx).Model(&models.Bid{}).
		Where("company_id = ? AND status = ?", company.CompanyID, models.BidPending).
		Count(&pendingBids).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count bids", err)
	}

	var activeProjects int64
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).
		Where("company_id = ? AND status NOT IN ?", company.CompanyID,
			[]string{models.ProjectCompleted, models.ProjectCancelled}).
		Count(&activeProjects).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count projects", err)
	}

	return &Dashboard{
		PendingBids:    pendingBids,
		ActiveProjects: activeProjects,
		Completed:      company.CompletedProjects,
		Rating:         company.Rating,
		TotalEarnings:  company.TotalEarnings,
	}, nil
}
