package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a user's rating of a company, optionally tied to a project
// (which marks it verified).
type Review struct {
	ReviewID   uuid.UUID  `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	CompanyID  uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	ProjectID  *uuid.UUID `gorm:"column:project_id;type:uuid" json:"project_id"`
	Rating     float64    `gorm:"column:rating;not null" json:"rating"`
	Title      string     `gorm:"column:title" json:"title"`
	Comment    string     `gorm:"column:comment" json:"comment"`
	IsVerified bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	IsFlagged  bool       `gorm:"column:is_flagged;default:false" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		r.ReviewID = uuid.New()
	}
	return nil
}
