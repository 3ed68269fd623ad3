package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bid status values. A bid moves out of pending exactly once: accepted XOR
// rejected as a side effect of the quotation award, or withdrawn by its company.
const (
	BidPending   = "pending"
	BidAccepted  = "accepted"
	BidRejected  = "rejected"
	BidWithdrawn = "withdrawn"
	BidExpired   = "expired"
)

// Bid is one company's priced proposal against a quotation request. The unique
// index on (quotation_id, company_id) enforces one bid per company per request
// at the store level; services precheck it to return a friendly Conflict.
type Bid struct {
	BidID             uuid.UUID      `gorm:"column:bid_id;type:uuid;primaryKey" json:"bid_id"`
	BidCode           string         `gorm:"column:bid_code;not null;uniqueIndex" json:"bid_code"`
	QuotationID       uuid.UUID      `gorm:"column:quotation_id;type:uuid;not null;uniqueIndex:idx_bids_quotation_company" json:"quotation_id"`
	CompanyID         uuid.UUID      `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_bids_quotation_company" json:"company_id"`
	TotalPrice        float64        `gorm:"column:total_price;type:decimal(18,2);not null" json:"total_price"`
	LaborCost         float64        `gorm:"column:labor_cost;type:decimal(18,2);default:0" json:"labor_cost"`
	MaterialCost      float64        `gorm:"column:material_cost;type:decimal(18,2);default:0" json:"material_cost"`
	OverheadCost      float64        `gorm:"column:overhead_cost;type:decimal(18,2);default:0" json:"overhead_cost"`
	TimelineDays      *int           `gorm:"column:timeline_days" json:"timeline_days"`
	TimelineDisplay   string         `gorm:"column:timeline_display" json:"timeline_display"`
	WarrantyMonths    int            `gorm:"column:warranty_months;default:0" json:"warranty_months"`
	WarrantyTerms     string         `gorm:"column:warranty_terms" json:"warranty_terms"`
	MaterialsProposed datatypes.JSON `gorm:"column:materials_proposed;type:jsonb" json:"materials_proposed"`
	ScopeOfWork       string         `gorm:"column:scope_of_work" json:"scope_of_work"`
	Notes             string         `gorm:"column:notes" json:"notes"`
	Status            string         `gorm:"column:status;type:varchar(20);default:pending;index" json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"-"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

func (Bid) TableName() string {
	return "bids"
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.BidID == uuid.Nil {
		b.BidID = uuid.New()
	}
	return nil
}
