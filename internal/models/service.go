package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a work category companies register for (Renovation, Plumbing, ...).
type Service struct {
	ServiceID   uuid.UUID `gorm:"column:service_id;type:uuid;primaryKey" json:"service_id"`
	Name        string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Icon        string    `gorm:"column:icon" json:"icon"`
	Description string    `gorm:"column:description" json:"description"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ServiceID == uuid.Nil {
		s.ServiceID = uuid.New()
	}
	return nil
}
