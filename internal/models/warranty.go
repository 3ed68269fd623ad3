package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warranty covers a completed project for the duration promised in the
// accepted bid.
type Warranty struct {
	WarrantyID            uuid.UUID  `gorm:"column:warranty_id;type:uuid;primaryKey" json:"warranty_id"`
	ProjectID             uuid.UUID  `gorm:"column:project_id;type:uuid;not null;uniqueIndex" json:"project_id"`
	WarrantyCode          string     `gorm:"column:warranty_code;not null;uniqueIndex" json:"warranty_code"`
	StartDate             time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate               time.Time  `gorm:"column:end_date;not null" json:"end_date"`
	Terms                 string     `gorm:"column:terms" json:"terms"`
	CoverageDetails       string     `gorm:"column:coverage_details" json:"coverage_details"`
	IsActive              bool       `gorm:"column:is_active;default:true" json:"is_active"`
	NextServiceDate       *time.Time `gorm:"column:next_service_date" json:"next_service_date"`
	ServiceIntervalMonths int        `gorm:"column:service_interval_months;default:6" json:"service_interval_months"`
}

func (Warranty) TableName() string {
	return "warranties"
}

func (w *Warranty) BeforeCreate(tx *gorm.DB) error {
	if w.WarrantyID == uuid.Nil {
		w.WarrantyID = uuid.New()
	}
	return nil
}
