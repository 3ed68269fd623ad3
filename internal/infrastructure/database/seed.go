package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
)

// Seed inserts the service-category catalogue and a starter material price
// board. Idempotent: rows already present are left alone.
func Seed(db *gorm.DB) error {
	services := []models.Service{
		{Name: "Interior Design", Slug: "interior-design", Icon: "🛋️", Description: "Complete interior makeovers"},
		{Name: "Renovation", Slug: "renovation", Icon: "🔨", Description: "Home and office renovation"},
		{Name: "Furniture", Slug: "furniture", Icon: "🪑", Description: "Custom furniture work"},
		{Name: "Plumbing", Slug: "plumbing", Icon: "🚿", Description: "Plumbing installation and repair"},
		{Name: "Electrical", Slug: "electrical", Icon: "💡", Description: "Wiring and electrical fittings"},
		{Name: "Full Construction", Slug: "full-construction", Icon: "🏗️", Description: "Ground-up construction"},
	}
	for _, s := range services {
		var existing models.Service
		err := db.Where("slug = ?", s.Slug).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			s.IsActive = true
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	materials := []models.Material{
		{Name: "Cement OPC 53", Brand: "UltraTech", Category: "Cement", Unit: "bag", CurrentPrice: 410},
		{Name: "Steel TMT 12mm", Brand: "TATA Tiscon", Category: "Steel", Unit: "kg", CurrentPrice: 68},
		{Name: "Red Clay Bricks", Category: "Bricks", Unit: "piece", CurrentPrice: 9},
		{Name: "River Sand", Category: "Sand", Unit: "cft", CurrentPrice: 55},
		{Name: "Vitrified Tiles 2x2", Brand: "Kajaria", Category: "Tiles", Unit: "sq.ft", CurrentPrice: 85},
		{Name: "Fly Ash Bricks", Category: "Bricks", Unit: "piece", CurrentPrice: 7, IsEcoFriendly: true},
	}
	for _, m := range materials {
		var existing models.Material
		err := db.Where("name = ?", m.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			m.City = "National Average"
			m.LastUpdated = time.Now().UTC()
			if err := db.Create(&m).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
