package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material is one row of the live price board.
type Material struct {
	MaterialID     uuid.UUID `gorm:"column:material_id;type:uuid;primaryKey" json:"material_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Brand          string    `gorm:"column:brand" json:"brand"`
	Category       string    `gorm:"column:category;not null;index" json:"category"`
	Unit           string    `gorm:"column:unit;type:varchar(30)" json:"unit"`
	CurrentPrice   float64   `gorm:"column:current_price;not null" json:"price"`
	PreviousPrice  *float64  `gorm:"column:previous_price" json:"-"`
	PriceChangePct float64   `gorm:"column:price_change_pct;default:0" json:"change"`
	City           string    `gorm:"column:city;default:National Average" json:"city"`
	IsEcoFriendly  bool      `gorm:"column:is_eco_friendly;default:false" json:"is_eco_friendly"`
	CarbonScore    *float64  `gorm:"column:carbon_score" json:"carbon_score"`
	LastUpdated    time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (Material) TableName() string {
	return "materials"
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialID == uuid.Nil {
		m.MaterialID = uuid.New()
	}
	return nil
}

type MaterialPriceHistory struct {
	HistoryID  uuid.UUID `gorm:"column:history_id;type:uuid;primaryKey" json:"history_id"`
	MaterialID uuid.UUID `gorm:"column:material_id;type:uuid;not null;index" json:"material_id"`
	Price      float64   `gorm:"column:price;not null" json:"price"`
	RecordedAt time.Time `gorm:"column:recorded_at" json:"recorded_at"`
}

func (MaterialPriceHistory) TableName() string {
	return "material_price_history"
}

func (h *MaterialPriceHistory) BeforeCreate(tx *gorm.DB) error {
	if h.HistoryID == uuid.Nil {
		h.HistoryID = uuid.New()
	}
	return nil
}
