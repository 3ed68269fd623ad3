package projects

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

type fixture struct {
	db         *gorm.DB
	svc        *Service
	owner      models.User
	company    models.Company
	project    models.Project
	milestones []models.Milestone
}

func (f *fixture) companyIdentity() middleware.Identity {
	return middleware.Identity{
		UserID:    f.company.UserID,
		Role:      constants.RoleCompany,
		CompanyID: &f.company.CompanyID,
	}
}

func (f *fixture) ownerIdentity() middleware.Identity {
	return middleware.Identity{UserID: f.owner.UserID, Role: constants.RoleUser}
}

func setupProjectTest(t *testing.T, warrantyMonths int) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	f := &fixture{db: db, svc: &Service{DB: db}}

	f.owner = models.User{Email: "owner@test.in", PasswordHash: "x", FullName: "Owner", Role: constants.RoleUser}
	require.NoError(t, db.Create(&f.owner).Error)

	companyUser := models.User{Email: "builder@test.in", PasswordHash: "x", FullName: "Builder", Role: constants.RoleCompany}
	require.NoError(t, db.Create(&companyUser).Error)
	f.company = models.Company{
		UserID:             companyUser.UserID,
		Name:               "BuildRight",
		VerificationStatus: models.VerificationApproved,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&f.company).Error)

	expires := time.Now().UTC().Add(24 * time.Hour)
	quotation := models.QuotationRequest{
		RequestCode: "QR001",
		UserID:      f.owner.UserID,
		Title:       "Kitchen renovation",
		ServiceType: "Renovation",
		Status:      models.QuotationAwarded,
		ExpiresAt:   &expires,
	}
	require.NoError(t, db.Create(&quotation).Error)

	bid := models.Bid{
		BidCode:        "B001",
		QuotationID:    quotation.QuotationID,
		CompanyID:      f.company.CompanyID,
		TotalPrice:     500000,
		WarrantyMonths: warrantyMonths,
		Status:         models.BidAccepted,
	}
	require.NoError(t, db.Create(&bid).Error)

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 90)
	f.project = models.Project{
		ProjectCode:        "P001",
		QuotationID:        quotation.QuotationID,
		BidID:              bid.BidID,
		CompanyID:          f.company.CompanyID,
		UserID:             f.owner.UserID,
		Title:              quotation.Title,
		TotalCost:          bid.TotalPrice,
		PlatformCommission: bid.TotalPrice * models.PlatformCommissionRate,
		Status:             models.ProjectPlanning,
		StartDate:          &start,
		ExpectedEndDate:    &end,
	}
	require.NoError(t, db.Create(&f.project).Error)

	for i, name := range models.DefaultMilestones {
		ms := models.Milestone{
			ProjectID: f.project.ProjectID,
			Name:      name,
			Status:    models.MilestonePending,
			SortOrder: i,
		}
		require.NoError(t, db.Create(&ms).Error)
		f.milestones = append(f.milestones, ms)
	}
	return f
}

func TestCompleteMilestone_CascadePromotesNext(t *testing.T) {
	f := setupProjectTest(t, 0)
	ctx := context.Background()
	id := f.companyIdentity()

	for i := 0; i < 4; i++ {
		project, err := f.svc.CompleteMilestone(ctx, id, f.project.ProjectID, f.milestones[i].MilestoneID)
		require.NoError(t, err)
		assert.Equal(t, (i+1)*20, project.Progress)
	}

	var project models.Project
	require.NoError(t, f.db.First(&project, "project_id = ?", f.project.ProjectID).Error)
	assert.Equal(t, 80, project.Progress)
	assert.Equal(t, models.ProjectInspection, project.Status)
	assert.Nil(t, project.ActualEndDate)

	var last models.Milestone
	require.NoError(t, f.db.First(&last, "milestone_id = ?", f.milestones[4].MilestoneID).Error)
	assert.Equal(t, models.MilestoneInProgress, last.Status)
}

func TestCompleteMilestone_OutOfOrderPromotesSuccessor(t *testing.T) {
	f := setupProjectTest(t, 0)
	ctx := context.Background()
	id := f.companyIdentity()

	// completing the middle milestone first advances its successor, not the
	// earliest pending one
	project, err := f.svc.CompleteMilestone(ctx, id, f.project.ProjectID, f.milestones[2].MilestoneID)
	require.NoError(t, err)
	assert.Equal(t, 20, project.Progress)

	var statuses []models.Milestone
	require.NoError(t, f.db.Where("project_id = ?", f.project.ProjectID).
		Order("sort_order ASC").Find(&statuses).Error)
	assert.Equal(t, models.MilestonePending, statuses[0].Status)
	assert.Equal(t, models.MilestonePending, statuses[1].Status)
	assert.Equal(t, models.MilestoneCompleted, statuses[2].Status)
	assert.Equal(t, models.MilestoneInProgress, statuses[3].Status)
	assert.Equal(t, models.MilestonePending, statuses[4].Status)

	// a successor that is no longer pending is left alone
	_, err = f.svc.CompleteMilestone(ctx, id, f.project.ProjectID, f.milestones[1].MilestoneID)
	require.NoError(t, err)
	require.NoError(t, f.db.Where("project_id = ?", f.project.ProjectID).
		Order("sort_order ASC").Find(&statuses).Error)
	assert.Equal(t, models.MilestonePending, statuses[0].Status)
	assert.Equal(t, models.MilestoneInProgress, statuses[3].Status)
}

func TestCompleteMilestone_FinalStepCompletesProject(t *testing.T) {
	f := setupProjectTest(t, 12)
	ctx := context.Background()
	id := f.companyIdentity()

	for i := 0; i < 5; i++ {
		_, err := f.svc.CompleteMilestone(ctx, id, f.project.ProjectID, f.milestones[i].MilestoneID)
		require.NoError(t, err)
	}

	var project models.Project
	require.NoError(t, f.db.First(&project, "project_id = ?", f.project.ProjectID).Error)
	assert.Equal(t, 100, project.Progress)
	assert.Equal(t, models.ProjectCompleted, project.Status)
	require.NotNil(t, project.ActualEndDate)

	var company models.Company
	require.NoError(t, f.db.First(&company, "company_id = ?", f.company.CompanyID).Error)
	assert.Equal(t, 1, company.CompletedProjects)
	assert.Equal(t, 475000.0, company.TotalEarnings)

	var warranty models.Warranty
	require.NoError(t, f.db.First(&warranty, "project_id = ?", f.project.ProjectID).Error)
	assert.Equal(t, "W001", warranty.WarrantyCode)
	assert.True(t, warranty.IsActive)
	assert.Equal(t, warranty.StartDate.AddDate(0, 12, 0), warranty.EndDate)
}

func TestCompleteMilestone_NoWarrantyWithoutTerm(t *testing.T) {
	f := setupProjectTest(t, 0)
	ctx := context.Background()
	id := f.companyIdentity()

	for i := 0; i < 5; i++ {
		_, err := f.svc.CompleteMilestone(ctx, id, f.project.ProjectID, f.milestones[i].MilestoneID)
		require.NoError(t, err)
	}

	var count int64
	f.db.Model(&models.Warranty{}).Where("project_id = ?", f.project.ProjectID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCompleteMilestone_RecompleteConflicts(t *testing.T) {
	f := setupProjectTest(t, 0)
	ctx := context.Background()
	id := f.companyIdentity()

	_, err := f.svc.CompleteMilestone(ctx, id, f.project.ProjectID, f.milestones[0].MilestoneID)
	require.NoError(t, err)

	_, err = f.svc.CompleteMilestone(ctx, id, f.project.ProjectID, f.milestones[0].MilestoneID)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestCompleteMilestone_ClosedProjectConflicts(t *testing.T) {
	f := setupProjectTest(t, 0)
	require.NoError(t, f.db.Model(&models.Project{}).
		Where("project_id = ?", f.project.ProjectID).
		Update("status", models.ProjectCancelled).Error)

	_, err := f.svc.CompleteMilestone(context.Background(), f.companyIdentity(),
		f.project.ProjectID, f.milestones[0].MilestoneID)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestCompleteMilestone_OtherCompanyForbidden(t *testing.T) {
	f := setupProjectTest(t, 0)

	otherUser := models.User{Email: "other@test.in", PasswordHash: "x", FullName: "Other", Role: constants.RoleCompany}
	require.NoError(t, f.db.Create(&otherUser).Error)
	other := models.Company{UserID: otherUser.UserID, Name: "Other Co", IsActive: true}
	require.NoError(t, f.db.Create(&other).Error)

	id := middleware.Identity{UserID: otherUser.UserID, Role: constants.RoleCompany, CompanyID: &other.CompanyID}
	_, err := f.svc.CompleteMilestone(context.Background(), id, f.project.ProjectID, f.milestones[0].MilestoneID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestPayMilestone_ReleasesEscrowShare(t *testing.T) {
	f := setupProjectTest(t, 0)
	ctx := context.Background()

	_, err := f.svc.CompleteMilestone(ctx, f.companyIdentity(), f.project.ProjectID, f.milestones[0].MilestoneID)
	require.NoError(t, err)

	payment, err := f.svc.PayMilestone(ctx, f.ownerIdentity(), f.project.ProjectID, f.milestones[0].MilestoneID, 100000)
	require.NoError(t, err)
	assert.Equal(t, "PAY001", payment.PaymentCode)
	assert.Equal(t, models.PaymentReleased, payment.Status)
	assert.Equal(t, 5000.0, payment.Commission)
	assert.Equal(t, 95000.0, payment.NetAmount)

	var project models.Project
	require.NoError(t, f.db.First(&project, "project_id = ?", f.project.ProjectID).Error)
	assert.Equal(t, 100000.0, project.TotalPaid)

	var milestone models.Milestone
	require.NoError(t, f.db.First(&milestone, "milestone_id = ?", f.milestones[0].MilestoneID).Error)
	assert.True(t, milestone.PaymentReleased)
	assert.Equal(t, 100000.0, milestone.PaymentAmount)
}

func TestPayMilestone_UncompletedMilestoneConflicts(t *testing.T) {
	f := setupProjectTest(t, 0)

	_, err := f.svc.PayMilestone(context.Background(), f.ownerIdentity(),
		f.project.ProjectID, f.milestones[0].MilestoneID, 100000)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestPayMilestone_DoublePayConflicts(t *testing.T) {
	f := setupProjectTest(t, 0)
	ctx := context.Background()

	_, err := f.svc.CompleteMilestone(ctx, f.companyIdentity(), f.project.ProjectID, f.milestones[0].MilestoneID)
	require.NoError(t, err)
	_, err = f.svc.PayMilestone(ctx, f.ownerIdentity(), f.project.ProjectID, f.milestones[0].MilestoneID, 100000)
	require.NoError(t, err)

	_, err = f.svc.PayMilestone(ctx, f.ownerIdentity(), f.project.ProjectID, f.milestones[0].MilestoneID, 100000)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}
