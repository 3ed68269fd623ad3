package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project status values. completed and cancelled are terminal.
const (
	ProjectPlanning    = "planning"
	ProjectProcurement = "material_procurement"
	ProjectInProgress  = "in_progress"
	ProjectInspection  = "inspection"
	ProjectCompleted   = "completed"
	ProjectOnHold      = "on_hold"
	ProjectCancelled   = "cancelled"
	ProjectDispute     = "dispute"
)

// PlatformCommissionRate is the fixed fee retained from the awarded bid value,
// stamped on the project at creation time.
const PlatformCommissionRate = 0.05

// DefaultTimelineDays applies when the accepted bid carries no timeline.
const DefaultTimelineDays = 90

// Project is the executable unit of work created exactly once per awarded bid.
// progress is derived from the milestone set and never written independently.
type Project struct {
	ProjectID          uuid.UUID      `gorm:"column:project_id;type:uuid;primaryKey" json:"project_id"`
	ProjectCode        string         `gorm:"column:project_code;not null;uniqueIndex" json:"project_code"`
	QuotationID        uuid.UUID      `gorm:"column:quotation_id;type:uuid;not null" json:"quotation_id"`
	BidID              uuid.UUID      `gorm:"column:bid_id;type:uuid;not null" json:"bid_id"`
	CompanyID          uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	UserID             uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Title              string         `gorm:"column:title;not null" json:"title"`
	Description        string         `gorm:"column:description" json:"description"`
	TotalCost          float64        `gorm:"column:total_cost;type:decimal(18,2)" json:"total_cost"`
	Status             string         `gorm:"column:status;type:varchar(30);default:planning;index" json:"status"`
	Progress           int            `gorm:"column:progress;default:0" json:"progress"`
	StartDate          *time.Time     `gorm:"column:start_date" json:"start_date"`
	ExpectedEndDate    *time.Time     `gorm:"column:expected_end_date" json:"expected_end_date"`
	ActualEndDate      *time.Time     `gorm:"column:actual_end_date" json:"actual_end_date"`
	TotalPaid          float64        `gorm:"column:total_paid;type:decimal(18,2);default:0" json:"total_paid"`
	EscrowAmount       float64        `gorm:"column:escrow_amount;type:decimal(18,2);default:0" json:"escrow_amount"`
	PlatformCommission float64        `gorm:"column:platform_commission;type:decimal(18,2);default:0" json:"platform_commission"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"-"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Milestones []Milestone `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
	Payments   []Payment   `gorm:"foreignKey:ProjectID" json:"payments,omitempty"`
	Warranty   *Warranty   `gorm:"foreignKey:ProjectID" json:"warranty,omitempty"`
	Company    *Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ProjectID == uuid.Nil {
		p.ProjectID = uuid.New()
	}
	return nil
}
