package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatRoom links one user and one company, optionally anchored to a quotation
// or project.
type ChatRoom struct {
	RoomID      uuid.UUID  `gorm:"column:room_id;type:uuid;primaryKey" json:"room_id"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	CompanyID   uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	QuotationID *uuid.UUID `gorm:"column:quotation_id;type:uuid" json:"quotation_id"`
	ProjectID   *uuid.UUID `gorm:"column:project_id;type:uuid" json:"project_id"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

func (r *ChatRoom) BeforeCreate(tx *gorm.DB) error {
	if r.RoomID == uuid.Nil {
		r.RoomID = uuid.New()
	}
	return nil
}

type ChatMessage struct {
	MessageID     uuid.UUID `gorm:"column:message_id;type:uuid;primaryKey" json:"message_id"`
	RoomID        uuid.UUID `gorm:"column:room_id;type:uuid;not null;index" json:"room_id"`
	SenderID      uuid.UUID `gorm:"column:sender_id;type:uuid;not null" json:"sender_id"`
	Message       string    `gorm:"column:message;not null" json:"message"`
	MessageType   string    `gorm:"column:message_type;type:varchar(20);default:text" json:"message_type"`
	AttachmentURL *string   `gorm:"column:attachment_url" json:"attachment_url"`
	IsRead        bool      `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
