package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Milestone status values. Transitions only move forward.
const (
	MilestonePending    = "pending"
	MilestoneInProgress = "in_progress"
	MilestoneCompleted  = "completed"
)

// DefaultMilestones is the fixed execution template attached to every new
// project, in sort order 0-4.
var DefaultMilestones = []string{
	"Planning & Design",
	"Material Procurement",
	"Work in Progress",
	"Quality Inspection",
	"Final Completion",
}

// Milestone is one ordered phase of a project's execution plan, gating a
// partial payment. sort_order defines a strict linear sequence per project.
type Milestone struct {
	MilestoneID     uuid.UUID  `gorm:"column:milestone_id;type:uuid;primaryKey" json:"milestone_id"`
	ProjectID       uuid.UUID  `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	Name            string     `gorm:"column:name;not null" json:"name"`
	Description     string     `gorm:"column:description" json:"description"`
	Status          string     `gorm:"column:status;type:varchar(20);default:pending" json:"status"`
	SortOrder       int        `gorm:"column:sort_order;default:0" json:"sort_order"`
	ExpectedDate    *time.Time `gorm:"column:expected_date" json:"expected_date"`
	CompletedDate   *time.Time `gorm:"column:completed_date" json:"completed_date"`
	PaymentAmount   float64    `gorm:"column:payment_amount;type:decimal(18,2);default:0" json:"payment_amount"`
	PaymentReleased bool       `gorm:"column:payment_released;default:false" json:"payment_released"`
}

func (Milestone) TableName() string {
	return "milestones"
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.MilestoneID == uuid.Nil {
		m.MilestoneID = uuid.New()
	}
	return nil
}
