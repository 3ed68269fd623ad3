package materials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

type Service struct {
	DB *gorm.DB
}

type ListFilter struct {
	Category string
	Search   string
	City     string
	EcoOnly  bool
}

// List returns the price board, optionally narrowed by category, name search,
// city or eco flag.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Material, error) {
	q := s.DB.WithContext(ctx).Model(&models.Material{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.EcoOnly {
		q = q.Where("is_eco_friendly = ?", true)
	}

	var materials []models.Material
	if err := q.Order("category ASC, name ASC").Find(&materials).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list materials", err)
	}
	return materials, nil
}

// History returns the recorded price points for one material, oldest first.
func (s *Service) History(ctx context.Context, materialID uuid.UUID) (*models.Material, []models.MaterialPriceHistory, error) {
	var material models.Material
	if err := s.DB.WithContext(ctx).
		Where("material_id = ?", materialID).First(&material).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperr.New(apperr.NotFound, "Material not found")
		}
		return nil, nil, apperr.Wrap(apperr.Internal, "Failed to load material", err)
	}

	var history []models.MaterialPriceHistory
	if err := s.DB.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("recorded_at ASC").Find(&history).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "Failed to load price history", err)
	}
	return &material, history, nil
}

// Categories returns the distinct material categories on the board.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.DB.WithContext(ctx).Model(&models.Material{}).
		Distinct("category").Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to list categories", err)
	}
	return categories, nil
}
