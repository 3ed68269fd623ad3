package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the contractor profile owned 1:1 by a user with role "company".
// Rating, completed_projects, success_rate and total_earnings are denormalized
// aggregates; they are only mutated through ApplyStatsDelta inside the
// transaction that triggered the change (review creation, project completion).
type Company struct {
	CompanyID          uuid.UUID      `gorm:"column:company_id;type:uuid;primaryKey" json:"company_id"`
	UserID             uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	Name               string         `gorm:"column:name;not null;index" json:"name"`
	LogoURL            *string        `gorm:"column:logo_url" json:"logo_url"`
	Description        string         `gorm:"column:description" json:"description"`
	Location           string         `gorm:"column:location" json:"location"`
	City               string         `gorm:"column:city;index" json:"city"`
	State              string         `gorm:"column:state" json:"state"`
	ExperienceYears    int            `gorm:"column:experience_years;default:0" json:"experience_years"`
	Website            *string        `gorm:"column:website" json:"website"`
	GstNumber          *string        `gorm:"column:gst_number" json:"gst_number"`
	GstVerified        bool           `gorm:"column:gst_verified;default:false" json:"gst_verified"`
	LicenseNumber      *string        `gorm:"column:license_number" json:"-"`
	Licensed           bool           `gorm:"column:licensed;default:false" json:"licensed"`
	PlatformVerified   bool           `gorm:"column:platform_verified;default:false" json:"platform_verified"`
	VerificationStatus string         `gorm:"column:verification_status;type:varchar(20);default:pending" json:"verification_status"`
	Rating             float64        `gorm:"column:rating;default:0" json:"rating"`
	TotalReviews       int            `gorm:"column:total_reviews;default:0" json:"total_reviews"`
	CompletedProjects  int            `gorm:"column:completed_projects;default:0" json:"completed_projects"`
	SuccessRate        float64        `gorm:"column:success_rate;default:0" json:"success_rate"`
	TotalEarnings      float64        `gorm:"column:total_earnings;type:decimal(18,2);default:0" json:"total_earnings"`
	IsActive           bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"-"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Services []Service `gorm:"many2many:company_services;foreignKey:CompanyID;joinForeignKey:company_id;References:ServiceID;joinReferences:service_id" json:"services,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.CompanyID == uuid.Nil {
		c.CompanyID = uuid.New()
	}
	return nil
}

// Verification status values for companies.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)
