package feed

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

type Service struct {
	DB *gorm.DB
}

type ListFilter struct {
	Category string
	Page     int
	PerPage  int
}

type ListResult struct {
	Posts []models.FeedProject `json:"posts"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Pages int                  `json:"pages"`
}

// List returns active showcase posts, featured first, newest first within each
// group.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 50 {
		f.PerPage = 12
	}

	q := s.DB.WithContext(ctx).Model(&models.FeedProject{}).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to count feed posts", err)
	}

	var posts []models.FeedProject
	if err := q.Preload("Company").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Order("is_featured DESC, created_at DESC").
		Offset((f.Page - 1) * f.PerPage).Limit(f.PerPage).
		Find(&posts).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list feed posts", err)
	}

	pages := int((total + int64(f.PerPage) - 1) / int64(f.PerPage))
	return &ListResult{Posts: posts, Total: total, Page: f.Page, Pages: pages}, nil
}

type CreateInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	CostMin       *float64 `json:"cost_min"`
	CostMax       *float64 `json:"cost_max"`
	CostRange     string   `json:"cost_range"`
	Timeline      string   `json:"timeline"`
	MaterialsUsed []string `json:"materials"`
	Location      string   `json:"location"`
	ImageURLs     []string `json:"image_urls"`
}

// Create publishes a showcase post for the caller's company.
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, in CreateInput) (*models.FeedProject, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, apperr.New(apperr.Validation, "Title and category are required")
	}
	materials, err := json.Marshal(in.MaterialsUsed)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Invalid materials list", err)
	}

	post := &models.FeedProject{
		CompanyID:        companyID,
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Category:         in.Category,
		CostMin:          in.CostMin,
		CostMax:          in.CostMax,
		CostRangeDisplay: in.CostRange,
		Timeline:         in.Timeline,
		MaterialsUsed:    datatypes.JSON(materials),
		Location:         in.Location,
		IsActive:         true,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to create post", err)
		}
		for i, url := range in.ImageURLs {
			img := models.ProjectImage{FeedProjectID: post.FeedProjectID, URL: url, SortOrder: i}
			if err := tx.Create(&img).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to attach images", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike flips the caller's like on a post and keeps the counter in step.
// Returns the new liked state and count.
func (s *Service) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (bool, int, error) {
	return s.toggle(ctx, userID, postID, "likes_count",
		func(tx *gorm.DB) (int64, error) {
			var n int64
			err := tx.Model(&models.FeedLike{}).
				Where("user_id = ? AND feed_project_id = ?", userID, postID).Count(&n).Error
			return n, err
		},
		func(tx *gorm.DB) error {
			return tx.Create(&models.FeedLike{UserID: userID, FeedProjectID: postID}).Error
		},
		func(tx *gorm.DB) error {
			return tx.Where("user_id = ? AND feed_project_id = ?", userID, postID).
				Delete(&models.FeedLike{}).Error
		})
}

// ToggleSave flips the caller's bookmark on a post.
func (s *Service) ToggleSave(ctx context.Context, userID, postID uuid.UUID) (bool, int, error) {
	return s.toggle(ctx, userID, postID, "saves_count",
		func(tx *gorm.DB) (int64, error) {
			var n int64
			err := tx.Model(&models.FeedSave{}).
				Where("user_id = ? AND feed_project_id = ?", userID, postID).Count(&n).Error
			return n, err
		},
		func(tx *gorm.DB) error {
			return tx.Create(&models.FeedSave{UserID: userID, FeedProjectID: postID}).Error
		},
		func(tx *gorm.DB) error {
			return tx.Where("user_id = ? AND feed_project_id = ?", userID, postID).
				Delete(&models.FeedSave{}).Error
		})
}

func (s *Service) toggle(
	ctx context.Context, userID, postID uuid.UUID, counter string,
	count func(*gorm.DB) (int64, error),
	add func(*gorm.DB) error,
	remove func(*gorm.DB) error,
) (bool, int, error) {
	var active bool
	var total int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.FeedProject
		if err := tx.Where("feed_project_id = ?", postID).First(&post).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.New(apperr.NotFound, "Post not found")
			}
			return apperr.Wrap(apperr.Internal, "Failed to load post", err)
		}

		existing, err := count(tx)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to check reaction", err)
		}

		delta := 1
		if existing > 0 {
			if err := remove(tx); err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to remove reaction", err)
			}
			delta = -1
			active = false
		} else {
			if err := add(tx); err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to add reaction", err)
			}
			active = true
		}

		if err := tx.Model(&models.FeedProject{}).
			Where("feed_project_id = ?", postID).
			UpdateColumn(counter, gorm.Expr(counter+" + ?", delta)).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to update counter", err)
		}

		var refreshed models.FeedProject
		if err := tx.Where("feed_project_id = ?", postID).First(&refreshed).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to reload post", err)
		}
		if counter == "likes_count" {
			total = refreshed.LikesCount
		} else {
			total = refreshed.SavesCount
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return active, total, nil
}
