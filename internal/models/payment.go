package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status values. Payments are simulated status records; no gateway
// integration sits behind them.
const (
	PaymentPending   = "pending"
	PaymentInEscrow  = "in_escrow"
	PaymentReleased  = "released"
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
	PaymentFailed    = "failed"
)

type Payment struct {
	PaymentID      uuid.UUID  `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentCode    string     `gorm:"column:payment_code;not null;uniqueIndex" json:"payment_code"`
	ProjectID      uuid.UUID  `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	PayerID        uuid.UUID  `gorm:"column:payer_id;type:uuid;not null" json:"payer_id"`
	PayeeCompanyID uuid.UUID  `gorm:"column:payee_company_id;type:uuid;not null" json:"payee_company_id"`
	MilestoneID    *uuid.UUID `gorm:"column:milestone_id;type:uuid" json:"milestone_id"`
	Amount         float64    `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Commission     float64    `gorm:"column:commission;type:decimal(18,2);default:0" json:"commission"`
	NetAmount      float64    `gorm:"column:net_amount;type:decimal(18,2)" json:"net_amount"`
	PaymentType    string     `gorm:"column:payment_type;type:varchar(20)" json:"payment_type"`
	Status         string     `gorm:"column:status;type:varchar(20);default:pending" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
