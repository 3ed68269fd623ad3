package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 when running behind a connection pooler.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for every model in dependency order.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Service{},
		&models.QuotationRequest{},
		&models.QuotationImage{},
		&models.Bid{},
		&models.Project{},
		&models.Milestone{},
		&models.Payment{},
		&models.Warranty{},
		&models.FeedProject{},
		&models.ProjectImage{},
		&models.FeedLike{},
		&models.FeedSave{},
		&models.Review{},
		&models.Material{},
		&models.MaterialPriceHistory{},
		&models.ChatRoom{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.Report{},
		&models.EstimationLog{},
		&models.Sequence{},
	)
}
