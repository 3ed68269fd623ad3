package quotations

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

func setupQuotationTest(t *testing.T) (*Service, *gorm.DB, models.User) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	owner := models.User{Email: "owner@test.in", PasswordHash: "x", FullName: "Owner", Role: constants.RoleUser}
	require.NoError(t, db.Create(&owner).Error)
	return &Service{DB: db}, db, owner
}

func seedVerifiedCompany(t *testing.T, db *gorm.DB, name, email string, services ...string) models.Company {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", FullName: name, Role: constants.RoleCompany}
	require.NoError(t, db.Create(&user).Error)
	company := models.Company{
		UserID:             user.UserID,
		Name:               name,
		VerificationStatus: models.VerificationApproved,
		PlatformVerified:   true,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&company).Error)
	for _, svc := range services {
		s := models.Service{Name: svc}
		require.NoError(t, db.FirstOrCreate(&s, models.Service{Name: svc}).Error)
		require.NoError(t, db.Model(&company).Association("Services").Append(&s))
	}
	return company
}

func TestCreate_AssignsCodeAndExpiry(t *testing.T) {
	svc, db, owner := setupQuotationTest(t)

	area := 1200.0
	quotation, err := svc.Create(context.Background(), owner.UserID, CreateInput{
		Title:       "Bathroom remodel",
		ServiceType: "Renovation",
		AreaSqft:    &area,
		City:        "Pune",
		ImageURLs:   []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "QR001", quotation.RequestCode)
	assert.Equal(t, models.QuotationActive, quotation.Status)
	assert.Equal(t, "normal", quotation.Urgency)
	require.NotNil(t, quotation.ExpiresAt)

	var images int64
	db.Model(&models.QuotationImage{}).Where("quotation_id = ?", quotation.QuotationID).Count(&images)
	assert.Equal(t, int64(2), images)

	next, err := svc.Create(context.Background(), owner.UserID, CreateInput{
		Title: "Wardrobes", ServiceType: "Furniture",
	})
	require.NoError(t, err)
	assert.Equal(t, "QR002", next.RequestCode)
}

func TestCreate_BroadcastsToMatchingCompanies(t *testing.T) {
	svc, db, owner := setupQuotationTest(t)

	renovator := seedVerifiedCompany(t, db, "RenovateCo", "r@test.in", "Renovation")
	plumber := seedVerifiedCompany(t, db, "PipeCo", "p@test.in", "Plumbing")
	generalist := seedVerifiedCompany(t, db, "AllCo", "a@test.in")

	_, err := svc.Create(context.Background(), owner.UserID, CreateInput{
		Title: "Bathroom remodel", ServiceType: "Renovation", BudgetDisplay: "5-7 Lakhs",
	})
	require.NoError(t, err)

	var notified []models.Notification
	require.NoError(t, db.Where("type = ?", models.NotifyNewQuotation).Find(&notified).Error)
	recipients := map[uuid.UUID]bool{}
	for _, n := range notified {
		recipients[n.UserID] = true
	}
	assert.True(t, recipients[renovator.UserID])
	assert.True(t, recipients[generalist.UserID], "companies without a service taxonomy receive everything")
	assert.False(t, recipients[plumber.UserID])
}

func TestCreate_RequiresTitleAndService(t *testing.T) {
	svc, _, owner := setupQuotationTest(t)

	_, err := svc.Create(context.Background(), owner.UserID, CreateInput{ServiceType: "Renovation"})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), owner.UserID, CreateInput{Title: "No service"})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestList_RoleScoping(t *testing.T) {
	svc, db, owner := setupQuotationTest(t)
	ctx := context.Background()

	other := models.User{Email: "other@test.in", PasswordHash: "x", FullName: "Other", Role: constants.RoleUser}
	require.NoError(t, db.Create(&other).Error)

	mine, err := svc.Create(ctx, owner.UserID, CreateInput{Title: "Mine", ServiceType: "Renovation"})
	require.NoError(t, err)
	theirs, err := svc.Create(ctx, other.UserID, CreateInput{Title: "Theirs", ServiceType: "Plumbing"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.QuotationRequest{}).
		Where("quotation_id = ?", theirs.QuotationID).
		Update("status", models.QuotationAwarded).Error)

	res, err := svc.List(ctx, owner.UserID, constants.RoleUser, ListFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, mine.QuotationID, res.Quotations[0].QuotationID)

	// companies only see requests still open for bids
	res, err = svc.List(ctx, owner.UserID, constants.RoleCompany, ListFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	assert.Equal(t, mine.QuotationID, res.Quotations[0].QuotationID)

	res, err = svc.List(ctx, owner.UserID, constants.RoleAdmin, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	_, err = svc.List(ctx, owner.UserID, "visitor", ListFilter{})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestGet_IncludesBids(t *testing.T) {
	svc, db, owner := setupQuotationTest(t)
	ctx := context.Background()

	quotation, err := svc.Create(ctx, owner.UserID, CreateInput{Title: "Mine", ServiceType: "Renovation"})
	require.NoError(t, err)

	company := seedVerifiedCompany(t, db, "RenovateCo", "r@test.in", "Renovation")
	bid := models.Bid{
		BidCode: "B001", QuotationID: quotation.QuotationID,
		CompanyID: company.CompanyID, TotalPrice: 400000, Status: models.BidPending,
	}
	require.NoError(t, db.Create(&bid).Error)

	detail, err := svc.Get(ctx, quotation.QuotationID)
	require.NoError(t, err)
	require.Len(t, detail.Bids, 1)
	require.NotNil(t, detail.Bids[0].Company)
	assert.Equal(t, "RenovateCo", detail.Bids[0].Company.Name)
}
