package reviews

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

func setupReviewTest(t *testing.T) (*Service, *gorm.DB, models.User, models.Company) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	user := models.User{Email: "owner@test.in", PasswordHash: "x", FullName: "Owner", Role: constants.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	companyUser := models.User{Email: "builder@test.in", PasswordHash: "x", FullName: "Builder", Role: constants.RoleCompany}
	require.NoError(t, db.Create(&companyUser).Error)
	company := models.Company{
		UserID:             companyUser.UserID,
		Name:               "BuildRight",
		VerificationStatus: models.VerificationApproved,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&company).Error)
	return &Service{DB: db}, db, user, company
}

func TestCreate_FoldsIntoCompanyAggregates(t *testing.T) {
	svc, db, user, company := setupReviewTest(t)
	ctx := context.Background()

	other := models.User{Email: "other@test.in", PasswordHash: "x", FullName: "Other", Role: constants.RoleUser}
	require.NoError(t, db.Create(&other).Error)

	_, err := svc.Create(ctx, user.UserID, CreateInput{CompanyID: company.CompanyID, Rating: 5, Comment: "Great"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other.UserID, CreateInput{CompanyID: company.CompanyID, Rating: 2, Comment: "Slow"})
	require.NoError(t, err)

	var saved models.Company
	require.NoError(t, db.First(&saved, "company_id = ?", company.CompanyID).Error)
	assert.Equal(t, 2, saved.TotalReviews)
	assert.Equal(t, 3.5, saved.Rating)
	// one of two reviews rated 4 or above
	assert.Equal(t, 50.0, saved.SuccessRate)
}

func TestCreate_ProjectMatchMarksVerified(t *testing.T) {
	svc, db, user, company := setupReviewTest(t)

	quotation := models.QuotationRequest{RequestCode: "QR001", UserID: user.UserID,
		Title: "Job", ServiceType: "Renovation", Status: models.QuotationAwarded}
	require.NoError(t, db.Create(&quotation).Error)
	bid := models.Bid{BidCode: "B001", QuotationID: quotation.QuotationID,
		CompanyID: company.CompanyID, TotalPrice: 100000, Status: models.BidAccepted}
	require.NoError(t, db.Create(&bid).Error)
	project := models.Project{ProjectCode: "P001", QuotationID: quotation.QuotationID,
		BidID: bid.BidID, CompanyID: company.CompanyID, UserID: user.UserID,
		Title: "Job", TotalCost: 100000, Status: models.ProjectCompleted}
	require.NoError(t, db.Create(&project).Error)

	review, err := svc.Create(context.Background(), user.UserID, CreateInput{
		CompanyID: company.CompanyID,
		ProjectID: &project.ProjectID,
		Rating:    5,
	})
	require.NoError(t, err)
	assert.True(t, review.IsVerified)
}

func TestCreate_RatingOutOfRangeRejected(t *testing.T) {
	svc, _, user, company := setupReviewTest(t)

	_, err := svc.Create(context.Background(), user.UserID, CreateInput{CompanyID: company.CompanyID, Rating: 0})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), user.UserID, CreateInput{CompanyID: company.CompanyID, Rating: 6})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestListForCompany_StarBreakdown(t *testing.T) {
	svc, db, user, company := setupReviewTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, user.UserID, CreateInput{CompanyID: company.CompanyID, Rating: 5})
	require.NoError(t, err)
	for i, rating := range []float64{5, 4, 2} {
		reviewer := models.User{Email: fmt.Sprintf("reviewer%d@test.in", i), PasswordHash: "x",
			FullName: "Reviewer", Role: constants.RoleUser}
		require.NoError(t, db.Create(&reviewer).Error)
		_, err := svc.Create(ctx, reviewer.UserID, CreateInput{CompanyID: company.CompanyID, Rating: rating})
		require.NoError(t, err)
	}

	res, err := svc.ListForCompany(ctx, company.CompanyID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)
	assert.Equal(t, int64(2), res.Breakdown[5])
	assert.Equal(t, int64(1), res.Breakdown[4])
	assert.Equal(t, int64(1), res.Breakdown[2])
	assert.Equal(t, int64(0), res.Breakdown[3])
}
