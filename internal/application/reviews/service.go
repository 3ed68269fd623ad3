package reviews

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/application/companies"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	CompanyID uuid.UUID  `json:"company_id"`
	ProjectID *uuid.UUID `json:"project_id"`
	Rating    float64    `json:"rating"`
	Title     string     `json:"title"`
	Comment   string     `json:"comment"`
}

// Create submits a review and folds it into the company's aggregates in the
// same transaction. A review tied to one of the caller's projects with this
// company is marked verified. SuccessRate is derived from reviews alone, the
// share rated 4 or above; project completions feed the other company counters
// but never this one.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.New(apperr.Validation, "Rating must be between 1 and 5")
	}

	review := &models.Review{
		UserID:    userID,
		CompanyID: in.CompanyID,
		ProjectID: in.ProjectID,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.Where("company_id = ?", in.CompanyID).First(&company).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Company not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load company", err)
		}

		if in.ProjectID != nil {
			var project models.Project
			err := tx.Where("project_id = ? AND user_id = ? AND company_id = ?",
				*in.ProjectID, userID, in.CompanyID).First(&project).Error
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperr.New(apperr.Validation, "Project does not match this company")
				}
				return apperr.Wrap(apperr.Internal, "Failed to load project", err)
			}
			review.IsVerified = true
		}

		if err := tx.Create(review).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to create review", err)
		}

		var stats struct {
			Count int64
			Avg   float64
			High  int64
		}
		if err := tx.Model(&models.Review{}).
			Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg, COALESCE(SUM(CASE WHEN rating >= 4 THEN 1 ELSE 0 END), 0) AS high").
			Where("company_id = ?", in.CompanyID).
			Scan(&stats).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to aggregate reviews", err)
		}

		return companies.ApplyStatsDelta(tx, in.CompanyID, func(c *models.Company) {
			c.TotalReviews = int(stats.Count)
			c.Rating = math.Round(stats.Avg*10) / 10
			if stats.Count > 0 {
				c.SuccessRate = math.Round(float64(stats.High)/float64(stats.Count)*1000) / 10
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

type ListResult struct {
	Reviews   []models.Review `json:"reviews"`
	Total     int64           `json:"total"`
	Breakdown map[int]int64   `json:"rating_breakdown"`
}

// ListForCompany returns a company's reviews, newest first, with a star-bucket
// breakdown.
func (s *Service) ListForCompany(ctx context.Context, companyID uuid.UUID, page int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	const perPage = 20

	q := s.DB.WithContext(ctx).Model(&models.Review{}).Where("company_id = ?", companyID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count reviews", err)
	}

	var reviews []models.Review
	if err := q.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&reviews).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list reviews", err)
	}

	breakdown := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.Review{}).
			Where("company_id = ? AND rating >= ? AND rating < ?", companyID, star, star+1).
			Count(&n).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to build breakdown", err)
		}
		breakdown[star] = n
	}
	return &ListResult{Reviews: reviews, Total: total, Breakdown: breakdown}, nil
}
