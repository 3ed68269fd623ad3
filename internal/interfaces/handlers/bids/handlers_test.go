package bids

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	bidsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/bids"
	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

func setupBidHandlerTest(t *testing.T) (*fiber.App, *gorm.DB, models.QuotationRequest) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	owner := models.User{Email: "owner@test.in", PasswordHash: "x", FullName: "Owner", Role: constants.RoleUser}
	require.NoError(t, db.Create(&owner).Error)
	companyUser := models.User{Email: "builder@test.in", PasswordHash: "x", FullName: "Builder", Role: constants.RoleCompany}
	require.NoError(t, db.Create(&companyUser).Error)
	company := models.Company{
		UserID: companyUser.UserID, Name: "BuildRight",
		VerificationStatus: models.VerificationApproved, PlatformVerified: true, IsActive: true,
	}
	require.NoError(t, db.Create(&company).Error)

	expires := time.Now().UTC().Add(24 * time.Hour)
	quotation := models.QuotationRequest{
		RequestCode: "QR001", UserID: owner.UserID, Title: "Kitchen renovation",
		ServiceType: "Renovation", Status: models.QuotationActive, ExpiresAt: &expires,
	}
	require.NoError(t, db.Create(&quotation).Error)

	h := &Handlers{Service: &bidsvc.Service{DB: db}}
	cid := company.CompanyID.String()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, middleware.SessionUser{
			UserID:    companyUser.UserID.String(),
			Role:      constants.RoleCompany,
			CompanyID: &cid,
		})
		return c.Next()
	})
	app.Post("/api/quotations/:id/bids", h.Submit)
	return app, db, quotation
}

func TestSubmit_BindsSnakeCaseBody(t *testing.T) {
	app, db, quotation := setupBidHandlerTest(t)

	body := `{
		"total_price": 550000,
		"labor_cost": 200000,
		"material_cost": 300000,
		"overhead_cost": 50000,
		"timeline_days": 120,
		"timeline_display": "4 months",
		"warranty_months": 12,
		"warranty_terms": "Workmanship only",
		"materials_proposed": ["Cement", "Tiles"],
		"scope_of_work": "Full kitchen rework",
		"notes": "Site visit done"
	}`
	req := httptest.NewRequest("POST",
		fmt.Sprintf("/api/quotations/%s/bids", quotation.QuotationID), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var bid models.Bid
	require.NoError(t, db.First(&bid, "quotation_id = ?", quotation.QuotationID).Error)
	assert.Equal(t, 550000.0, bid.TotalPrice)
	assert.Equal(t, 200000.0, bid.LaborCost)
	require.NotNil(t, bid.TimelineDays)
	assert.Equal(t, 120, *bid.TimelineDays)
	assert.Equal(t, 12, bid.WarrantyMonths)
	assert.Equal(t, "Full kitchen rework", bid.ScopeOfWork)
	assert.Contains(t, string(bid.MaterialsProposed), "Tiles")
}

func TestSubmit_QuotationIDComesFromRouteOnly(t *testing.T) {
	app, db, quotation := setupBidHandlerTest(t)

	// a quotation_id in the body must not override the route parameter
	body := `{"total_price": 400000, "quotation_id": "00000000-0000-0000-0000-000000000001"}`
	req := httptest.NewRequest("POST",
		fmt.Sprintf("/api/quotations/%s/bids", quotation.QuotationID), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var bid models.Bid
	require.NoError(t, db.First(&bid).Error)
	assert.Equal(t, quotation.QuotationID, bid.QuotationID)
}
