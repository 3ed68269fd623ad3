package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EstimationLog records every cost-estimator call for later analysis.
type EstimationLog struct {
	LogID             uuid.UUID  `gorm:"column:log_id;type:uuid;primaryKey" json:"log_id"`
	UserID            *uuid.UUID `gorm:"column:user_id;type:uuid" json:"user_id"`
	ServiceType       string     `gorm:"column:service_type" json:"service_type"`
	AreaSqft          float64    `gorm:"column:area_sqft" json:"area_sqft"`
	QualityLevel      string     `gorm:"column:quality_level;type:varchar(20)" json:"quality_level"`
	NumRooms          int        `gorm:"column:num_rooms" json:"num_rooms"`
	EstimatedMin      float64    `gorm:"column:estimated_min" json:"estimated_min"`
	EstimatedMax      float64    `gorm:"column:estimated_max" json:"estimated_max"`
	EstimatedDuration string     `gorm:"column:estimated_duration" json:"estimated_duration"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (EstimationLog) TableName() string {
	return "ai_estimation_logs"
}

func (l *EstimationLog) BeforeCreate(tx *gorm.DB) error {
	if l.LogID == uuid.Nil {
		l.LogID = uuid.New()
	}
	return nil
}
