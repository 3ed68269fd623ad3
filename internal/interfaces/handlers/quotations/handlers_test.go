package quotations

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	quotsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/quotations"
	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

func setupQuotationHandlerTest(t *testing.T) (*fiber.App, *gorm.DB, models.User) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	owner := models.User{Email: "owner@test.in", PasswordHash: "x", FullName: "Owner", Role: constants.RoleUser}
	require.NoError(t, db.Create(&owner).Error)

	h := &Handlers{Service: &quotsvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, middleware.SessionUser{
			UserID: owner.UserID.String(),
			Role:   constants.RoleUser,
		})
		return c.Next()
	})
	app.Post("/api/quotations", h.Create)
	return app, db, owner
}

func TestCreate_BindsSnakeCaseBody(t *testing.T) {
	app, db, owner := setupQuotationHandlerTest(t)

	body := `{
		"title": "Bathroom remodel",
		"description": "Full rework of two bathrooms",
		"service_type": "Renovation",
		"area_sqft": 350,
		"num_rooms": 2,
		"location": "Koramangala",
		"city": "Bengaluru",
		"budget_min": 500000,
		"budget_max": 700000,
		"budget_display": "5-7 Lakhs",
		"timeline": "2 months",
		"urgency": "high",
		"material_preferences": {"tiles": "vitrified"},
		"green_mode": true,
		"image_urls": ["https://cdn.test/a.jpg"]
	}`
	req := httptest.NewRequest("POST", "/api/quotations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var quotation models.QuotationRequest
	require.NoError(t, db.First(&quotation, "user_id = ?", owner.UserID).Error)
	assert.Equal(t, "Bathroom remodel", quotation.Title)
	assert.Equal(t, "Renovation", quotation.ServiceType)
	require.NotNil(t, quotation.AreaSqft)
	assert.Equal(t, 350.0, *quotation.AreaSqft)
	require.NotNil(t, quotation.BudgetMin)
	assert.Equal(t, 500000.0, *quotation.BudgetMin)
	assert.Equal(t, "high", quotation.Urgency)
	assert.True(t, quotation.GreenMode)
	assert.Contains(t, string(quotation.MaterialPreferences), "vitrified")

	var images int64
	db.Model(&models.QuotationImage{}).Where("quotation_id = ?", quotation.QuotationID).Count(&images)
	assert.Equal(t, int64(1), images)
}

func TestCreate_MissingServiceTypeRejected(t *testing.T) {
	app, _, _ := setupQuotationHandlerTest(t)

	req := httptest.NewRequest("POST", "/api/quotations", bytes.NewBufferString(`{"title":"No service"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
