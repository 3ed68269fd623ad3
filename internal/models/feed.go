package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedProject is a company's showcase post (completed work, cost band, photos).
// likes_count and saves_count are denormalized tallies of the join tables.
type FeedProject struct {
	FeedProjectID    uuid.UUID      `gorm:"column:feed_project_id;type:uuid;primaryKey" json:"feed_project_id"`
	CompanyID        uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Description      string         `gorm:"column:description" json:"description"`
	Category         string         `gorm:"column:category;not null;index" json:"category"`
	CostMin          *float64       `gorm:"column:cost_min" json:"cost_min"`
	CostMax          *float64       `gorm:"column:cost_max" json:"cost_max"`
	CostRangeDisplay string         `gorm:"column:cost_range_display" json:"cost_range"`
	Timeline         string         `gorm:"column:timeline" json:"timeline"`
	MaterialsUsed    datatypes.JSON `gorm:"column:materials_used;type:jsonb" json:"materials"`
	Location         string         `gorm:"column:location" json:"location"`
	LikesCount       int            `gorm:"column:likes_count;default:0" json:"likes"`
	SavesCount       int            `gorm:"column:saves_count;default:0" json:"saves"`
	ViewsCount       int            `gorm:"column:views_count;default:0" json:"views"`
	IsFeatured       bool           `gorm:"column:is_featured;default:false" json:"is_featured"`
	IsActive         bool           `gorm:"column:is_active;default:true" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`

	Company *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Images  []ProjectImage `gorm:"foreignKey:FeedProjectID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (FeedProject) TableName() string {
	return "feed_projects"
}

func (f *FeedProject) BeforeCreate(tx *gorm.DB) error {
	if f.FeedProjectID == uuid.Nil {
		f.FeedProjectID = uuid.New()
	}
	return nil
}

type ProjectImage struct {
	ImageID       uuid.UUID `gorm:"column:image_id;type:uuid;primaryKey" json:"image_id"`
	FeedProjectID uuid.UUID `gorm:"column:feed_project_id;type:uuid;not null;index" json:"feed_project_id"`
	URL           string    `gorm:"column:url;not null" json:"url"`
	Caption       string    `gorm:"column:caption" json:"caption"`
	IsBefore      bool      `gorm:"column:is_before;default:false" json:"is_before"`
	SortOrder     int       `gorm:"column:sort_order;default:0" json:"sort_order"`
}

func (ProjectImage) TableName() string {
	return "project_images"
}

func (i *ProjectImage) BeforeCreate(tx *gorm.DB) error {
	if i.ImageID == uuid.Nil {
		i.ImageID = uuid.New()
	}
	return nil
}

// FeedLike and FeedSave are the user<->post reaction joins behind the
// denormalized counters on FeedProject.
type FeedLike struct {
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FeedProjectID uuid.UUID `gorm:"column:feed_project_id;type:uuid;primaryKey" json:"feed_project_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (FeedLike) TableName() string {
	return "liked_projects"
}

type FeedSave struct {
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FeedProjectID uuid.UUID `gorm:"column:feed_project_id;type:uuid;primaryKey" json:"feed_project_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (FeedSave) TableName() string {
	return "saved_projects"
}
