package estimator

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
)

// Fixed rate tables, in INR per sqft. Unknown services and quality levels fall
// back to the Interior Design rate and the Standard multiplier.
var baseCosts = map[string]float64{
	"Interior Design":   800,
	"Renovation":        650,
	"Furniture":         500,
	"Plumbing":          200,
	"Electrical":        150,
	"Full Construction": 1800,
}

var qualityMultipliers = map[string]float64{
	"Economy":  1.0,
	"Standard": 1.5,
	"Premium":  2.2,
	"Luxury":   3.5,
}

var materialSuggestions = map[string][]string{
	"Interior Design":   {"Plywood BWR", "Laminate/Veneer", "Hardware", "Paint", "Lighting", "Tiles"},
	"Renovation":        {"Cement", "Sand", "Tiles", "Paint", "Plumbing Fittings", "Electrical"},
	"Furniture":         {"Teak/Sal Wood", "Plywood", "Laminate", "Hardware", "Glass"},
	"Plumbing":          {"CPVC Pipes", "Fittings", "Mixer Taps", "Sanitaryware"},
	"Electrical":        {"Copper Wire", "Switches", "MCB Panel", "LED Lights"},
	"Full Construction": {"Cement", "Steel TMT", "Bricks/Blocks", "Sand", "Aggregate", "Plumbing", "Electrical", "Paint"},
}

var greenMaterials = []string{
	"Fly Ash Bricks (eco-friendly)",
	"Low-VOC Paint",
	"Bamboo Flooring",
	"Recycled Steel",
	"Solar Panels",
}

type Service struct {
	DB *gorm.DB
}

type Input struct {
	ServiceType  string  `json:"service_type"`
	AreaSqft     float64 `json:"area_sqft"`
	QualityLevel string  `json:"quality_level"`
	NumRooms     int     `json:"num_rooms"`
	GreenMode    bool    `json:"green_mode"`
}

type Estimate struct {
	MinCost        float64  `json:"min_cost"`
	MaxCost        float64  `json:"max_cost"`
	Duration       string   `json:"duration"`
	Materials      []string `json:"materials"`
	GreenMaterials []string `json:"green_materials"`
	CarbonScore    *float64 `json:"carbon_score"`
}

// Estimate computes the deterministic cost band for a job and logs the call.
// The log write is best effort and never fails the estimate.
func (s *Service) Estimate(ctx context.Context, userID *uuid.UUID, in Input) (*Estimate, error) {
	if in.AreaSqft <= 0 {
		return nil, apperr.New(apperr.Validation, "Area must be positive")
	}
	if in.NumRooms <= 0 {
		in.NumRooms = 3
	}
	quality := in.QualityLevel
	if quality == "" {
		quality = "Standard"
	}

	base, ok := baseCosts[in.ServiceType]
	if !ok {
		base = 800
	}
	mult, ok := qualityMultipliers[quality]
	if !ok {
		mult = 1.5
	}

	minCost := math.Round(base * in.AreaSqft * mult * 0.85)
	maxCost := math.Round(base * in.AreaSqft * mult * 1.15)
	days := int(math.Round(in.AreaSqft / 100 * mult * float64(in.NumRooms) * 1.5))
	duration := fmt.Sprintf("%d - %d days", days, days+15)

	est := &Estimate{
		MinCost:        minCost,
		MaxCost:        maxCost,
		Duration:       duration,
		Materials:      materialSuggestions[in.ServiceType],
		GreenMaterials: []string{},
	}
	if in.GreenMode {
		est.GreenMaterials = greenMaterials
		carbon := math.Round(in.AreaSqft*0.05*mult*10) / 10
		est.CarbonScore = &carbon
	}

	entry := models.EstimationLog{
		UserID:            userID,
		ServiceType:       in.ServiceType,
		AreaSqft:          in.AreaSqft,
		QualityLevel:      quality,
		NumRooms:          in.NumRooms,
		EstimatedMin:      minCost,
		EstimatedMax:      maxCost,
		EstimatedDuration: duration,
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Warn().Err(err).Msg("failed to write estimation log")
	}
	return est, nil
}
