package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report status values for the moderation queue.
const (
	ReportOpen          = "open"
	ReportInvestigating = "investigating"
	ReportResolved      = "resolved"
	ReportDismissed     = "dismissed"
)

type Report struct {
	ReportID    uuid.UUID  `gorm:"column:report_id;type:uuid;primaryKey" json:"report_id"`
	ReporterID  uuid.UUID  `gorm:"column:reporter_id;type:uuid;not null" json:"reporter_id"`
	ReportType  string     `gorm:"column:report_type;type:varchar(30);not null" json:"report_type"`
	TargetType  string     `gorm:"column:target_type;type:varchar(30)" json:"target_type"`
	TargetID    *uuid.UUID `gorm:"column:target_id;type:uuid" json:"target_id"`
	Description string     `gorm:"column:description" json:"description"`
	Severity    string     `gorm:"column:severity;type:varchar(10);default:medium" json:"severity"`
	Status      string     `gorm:"column:status;type:varchar(20);default:open" json:"status"`
	AdminNotes  string     `gorm:"column:admin_notes" json:"admin_notes"`
	ResolvedBy  *uuid.UUID `gorm:"column:resolved_by;type:uuid" json:"resolved_by"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at" json:"resolved_at"`

	Reporter *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ReportID == uuid.Nil {
		r.ReportID = uuid.New()
	}
	return nil
}
