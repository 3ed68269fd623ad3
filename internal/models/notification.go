package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification kinds emitted by lifecycle transitions.
const (
	NotifyNewQuotation  = "new_quotation"
	NotifyBidReceived   = "bid_received"
	NotifyBidAccepted   = "bid_accepted"
	NotifyBidRejected   = "bid_rejected"
	NotifyProjectUpdate = "project_update"
	NotifyPayment       = "payment"
	NotifyReview        = "review"
	NotifySystem        = "system"
)

// Notification is a fire-and-forget fact delivered to one user. Delivery is
// best effort; rows are written in the same transaction as their trigger.
type Notification struct {
	NotificationID uuid.UUID  `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Title          string     `gorm:"column:title;not null" json:"title"`
	Message        string     `gorm:"column:message" json:"message"`
	Type           string     `gorm:"column:notification_type;type:varchar(30)" json:"type"`
	ReferenceType  string     `gorm:"column:reference_type;type:varchar(30)" json:"reference_type"`
	ReferenceID    *uuid.UUID `gorm:"column:reference_id;type:uuid" json:"reference_id"`
	IsRead         bool       `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
