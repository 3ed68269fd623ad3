package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation request status values.
const (
	QuotationActive    = "active"
	QuotationClosed    = "closed"
	QuotationAwarded   = "awarded"
	QuotationCancelled = "cancelled"
	QuotationExpired   = "expired"
)

// QuotationRequest is a homeowner's posted request for work, open for bidding
// until awarded or expired. expires_at is advisory: no sweeper flips the status,
// but bid submission treats a past-expiry active request as closed.
type QuotationRequest struct {
	QuotationID         uuid.UUID      `gorm:"column:quotation_id;type:uuid;primaryKey" json:"quotation_id"`
	RequestCode         string         `gorm:"column:request_code;not null;uniqueIndex" json:"request_code"`
	UserID              uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Title               string         `gorm:"column:title;not null" json:"title"`
	Description         string         `gorm:"column:description" json:"description"`
	ServiceType         string         `gorm:"column:service_type;not null;index" json:"service_type"`
	AreaSqft            *float64       `gorm:"column:area_sqft" json:"area_sqft"`
	NumRooms            *int           `gorm:"column:num_rooms" json:"num_rooms"`
	Location            string         `gorm:"column:location" json:"location"`
	City                string         `gorm:"column:city" json:"city"`
	BudgetMin           *float64       `gorm:"column:budget_min" json:"budget_min"`
	BudgetMax           *float64       `gorm:"column:budget_max" json:"budget_max"`
	BudgetDisplay       string         `gorm:"column:budget_display" json:"budget_display"`
	Timeline            string         `gorm:"column:timeline" json:"timeline"`
	Urgency             string         `gorm:"column:urgency;type:varchar(20);default:normal" json:"urgency"`
	MaterialPreferences datatypes.JSON `gorm:"column:material_preferences;type:jsonb" json:"material_preferences"`
	GreenMode           bool           `gorm:"column:green_mode;default:false" json:"green_mode"`
	Status              string         `gorm:"column:status;type:varchar(20);default:active;index" json:"status"`
	TotalBids           int            `gorm:"column:total_bids;default:0" json:"total_bids"`
	AwardedBidID        *uuid.UUID     `gorm:"column:awarded_bid_id;type:uuid" json:"awarded_bid_id"`
	ExpiresAt           *time.Time     `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"-"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceImages []QuotationImage `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"reference_images,omitempty"`
}

func (QuotationRequest) TableName() string {
	return "quotation_requests"
}

func (q *QuotationRequest) BeforeCreate(tx *gorm.DB) error {
	if q.QuotationID == uuid.Nil {
		q.QuotationID = uuid.New()
	}
	return nil
}

// IsOpenForBids reports whether new bids may still attach at the given time.
func (q *QuotationRequest) IsOpenForBids(now time.Time) bool {
	if q.Status != QuotationActive {
		return false
	}
	if q.ExpiresAt != nil && now.After(*q.ExpiresAt) {
		return false
	}
	return true
}

type QuotationImage struct {
	ImageID     uuid.UUID `gorm:"column:image_id;type:uuid;primaryKey" json:"image_id"`
	QuotationID uuid.UUID `gorm:"column:quotation_id;type:uuid;not null;index" json:"quotation_id"`
	URL         string    `gorm:"column:url;not null" json:"url"`
	Filename    string    `gorm:"column:filename" json:"filename"`
	FileType    string    `gorm:"column:file_type;type:varchar(20)" json:"file_type"`
}

func (QuotationImage) TableName() string {
	return "quotation_images"
}

func (i *QuotationImage) BeforeCreate(tx *gorm.DB) error {
	if i.ImageID == uuid.Nil {
		i.ImageID = uuid.New()
	}
	return nil
}
