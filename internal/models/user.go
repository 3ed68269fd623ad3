package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	FullName     string         `gorm:"column:full_name;not null" json:"full_name"`
	Phone        *string        `gorm:"column:phone" json:"phone"`
	AvatarURL    *string        `gorm:"column:avatar_url" json:"avatar_url"`
	Location     string         `gorm:"column:location" json:"location"`
	Role         string         `gorm:"column:role;type:varchar(20);not null;default:user" json:"role"`
	IsActive     bool           `gorm:"column:is_active;default:true" json:"is_active"`
	IsVerified   bool           `gorm:"column:is_verified;default:false" json:"is_verified"`
	LastLogin    *time.Time     `gorm:"column:last_login" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
