package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type saleFixture struct {
	sales         *fakeSaleRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	mailer        *fakeMailer
	service       *SaleService
	rep           *models.User
	manager       *models.User
	approver      *models.User
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	sales := newFakeSaleRepo()
	users := newFakeUserRepo()
	notifications := newFakeNotificationRepo()
	mailer := &fakeMailer{}

	manager := users.add(&models.User{
		Email:    "manager@example.com",
		FullName: "Morgan Manager",
		Role:     models.RoleSalesManager,
		Status:   models.UserStatusActive,
	})
	rep := users.add(&models.User{
		Email:     "rep@example.com",
		FullName:  "Riley Rep",
		Role:      models.RoleSalesRep,
		ManagerID: &manager.ID,
		Status:    models.UserStatusActive,
	})
	approver := users.add(&models.User{
		Email:    "ops@example.com",
		FullName: "Olive Ops",
		Role:     models.RoleOperations,
		Status:   models.UserStatusActive,
	})

	service := NewSaleService(sales, users,
		NewNotificationService(notifications),
		NewLeaderboardService(sales, nil),
		nil, mailer)

	return &saleFixture{
		sales:         sales,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		service:       service,
		rep:           rep,
		manager:       manager,
		approver:      approver,
	}
}

func (fx *saleFixture) submitSale(t *testing.T, amount float64, saleType string) *models.Sale {
	t.Helper()
	sale, err := fx.service.Submit(context.Background(), fx.rep.ID.Hex(), models.SubmitSaleRequest{
		Amount:   amount,
		SaleType: saleType,
	})
	require.NoError(t, err)
	return sale
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmit_StartsPendingWithScoredPoints(t *testing.T) {
	// GIVEN: An active rep with a manager
	// WHEN: The rep submits a new_business sale for 2500
	// THEN: The sale is pending, scored 50 + 25 points, and the manager
	//       gets a pending notice

	fx := newSaleFixture(t)

	sale := fx.submitSale(t, 2500, "new_business")

	assert.Equal(t, models.SaleStatusPending, sale.Status)
	assert.Equal(t, 75, sale.TotalPoints)
	assert.Equal(t, fx.rep.ID, sale.SalesRepID)
	assert.Equal(t, "Riley Rep", sale.SalesRepName)
	assert.False(t, sale.SaleDate.IsZero(), "saleDate defaults to submission time")

	pending := fx.notifications.byType(models.NotificationTypeSalePending)
	require.Len(t, pending, 1)
	assert.Equal(t, fx.manager.ID, pending[0].UserID)
	assert.Equal(t, sale.ID.Hex(), pending[0].Metadata["saleId"])
}

func TestSubmit_RejectsNonPositiveAmount(t *testing.T) {
	fx := newSaleFixture(t)

	_, err := fx.service.Submit(context.Background(), fx.rep.ID.Hex(), models.SubmitSaleRequest{
		Amount:   0,
		SaleType: "renewal",
	})

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, utils.AsAppError(err).Code)
}

func TestSubmit_UnknownRep(t *testing.T) {
	fx := newSaleFixture(t)

	_, err := fx.service.Submit(context.Background(), primitive.NewObjectID().Hex(), models.SubmitSaleRequest{
		Amount:   100,
		SaleType: "renewal",
	})

	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, utils.AsAppError(err).Code)
}

func TestSubmit_KeepsExplicitSaleDate(t *testing.T) {
	fx := newSaleFixture(t)
	saleDate := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	sale, err := fx.service.Submit(context.Background(), fx.rep.ID.Hex(), models.SubmitSaleRequest{
		Amount:   100,
		SaleType: "renewal",
		SaleDate: saleDate,
	})

	require.NoError(t, err)
	assert.True(t, sale.SaleDate.Equal(saleDate))
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestResolve_ApprovalIsTerminal(t *testing.T) {
	// GIVEN: A pending sale
	// WHEN: An approver approves it
	// THEN: The sale is approved with the approver recorded, and a second
	//       decision of either kind conflicts

	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 1000, "upsell")
	ctx := context.Background()

	status, err := fx.service.Resolve(ctx, sale.ID.Hex(), models.SaleStatusApproved,
		fx.approver.ID.Hex(), fx.approver.FullName, "")
	require.NoError(t, err)
	assert.Equal(t, models.SaleStatusApproved, status)

	stored, err := fx.sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SaleStatusApproved, stored.Status)
	assert.Equal(t, fx.approver.ID, stored.ApprovedBy)
	assert.Equal(t, "Olive Ops", stored.ApproverName)
	require.NotNil(t, stored.ApprovedAt)

	_, err = fx.service.Resolve(ctx, sale.ID.Hex(), models.SaleStatusRejected,
		fx.approver.ID.Hex(), fx.approver.FullName, "late")
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, utils.CodeConflict, appErr.Code)
	assert.Contains(t, appErr.Message, models.SaleStatusApproved)

	_, err = fx.service.Resolve(ctx, sale.ID.Hex(), models.SaleStatusApproved,
		fx.approver.ID.Hex(), fx.approver.FullName, "")
	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, utils.AsAppError(err).Code)
}

func TestResolve_ApprovalFansOutTwoNotices(t *testing.T) {
	// GIVEN: A pending sale worth points
	// WHEN: It is approved
	// THEN: The rep gets a sale_approved notice and a separate
	//       points_earned notice carrying the points

	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 500, "referral") // 25 + 5 points

	_, err := fx.service.Resolve(context.Background(), sale.ID.Hex(), models.SaleStatusApproved,
		fx.approver.ID.Hex(), fx.approver.FullName, "")
	require.NoError(t, err)

	approved := fx.notifications.byType(models.NotificationTypeSaleApproved)
	require.Len(t, approved, 1)
	assert.Equal(t, fx.rep.ID, approved[0].UserID)
	assert.Equal(t, sale.ID.Hex(), approved[0].Metadata["saleId"])
	assert.NotEmpty(t, approved[0].Metadata["eventId"])

	earned := fx.notifications.byType(models.NotificationTypePointsEarned)
	require.Len(t, earned, 1)
	assert.Equal(t, fx.rep.ID, earned[0].UserID)
	assert.Equal(t, 30, earned[0].Metadata["points"])

	assert.Empty(t, fx.notifications.byType(models.NotificationTypeSaleRejected))
}

func TestResolve_RejectionSendsSingleNoticeWithReason(t *testing.T) {
	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 500, "referral")

	_, err := fx.service.Resolve(context.Background(), sale.ID.Hex(), models.SaleStatusRejected,
		fx.approver.ID.Hex(), fx.approver.FullName, "duplicate entry")
	require.NoError(t, err)

	rejected := fx.notifications.byType(models.NotificationTypeSaleRejected)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Message, "duplicate entry")

	assert.Empty(t, fx.notifications.byType(models.NotificationTypePointsEarned))
	assert.Empty(t, fx.notifications.byType(models.NotificationTypeSaleApproved))
}

func TestResolve_RejectionWithoutReasonUsesFallbackMessage(t *testing.T) {
	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 500, "referral")

	_, err := fx.service.Resolve(context.Background(), sale.ID.Hex(), models.SaleStatusRejected,
		fx.approver.ID.Hex(), fx.approver.FullName, "")
	require.NoError(t, err)

	rejected := fx.notifications.byType(models.NotificationTypeSaleRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, "Your sale was not approved.", rejected[0].Message)
}

func TestResolve_UnknownSale(t *testing.T) {
	fx := newSaleFixture(t)

	_, err := fx.service.Resolve(context.Background(), primitive.NewObjectID().Hex(),
		models.SaleStatusApproved, fx.approver.ID.Hex(), fx.approver.FullName, "")

	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, utils.AsAppError(err).Code)
}

func TestResolve_InvalidDecision(t *testing.T) {
	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 500, "referral")

	_, err := fx.service.Resolve(context.Background(), sale.ID.Hex(), "escalated",
		fx.approver.ID.Hex(), fx.approver.FullName, "")

	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, utils.AsAppError(err).Code)

	stored, _ := fx.sales.FindByID(context.Background(), sale.ID)
	assert.Equal(t, models.SaleStatusPending, stored.Status, "sale stays pending on a bad decision")
}

func TestResolve_LostRaceReportsWinnerState(t *testing.T) {
	// GIVEN: Two approvers race on the same pending sale
	// WHEN: The second conditional write matches nothing
	// THEN: The loser gets a conflict naming the winner's terminal state
	//       and the side effects run exactly once

	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 1000, "new_business")
	ctx := context.Background()

	// Winner lands between the loser's read and write.
	matched, err := fx.sales.Resolve(ctx, sale.ID, saleResolutionFor(fx.approver.ID, models.SaleStatusRejected))
	require.NoError(t, err)
	require.True(t, matched)

	_, err = fx.service.Resolve(ctx, sale.ID.Hex(), models.SaleStatusApproved,
		fx.approver.ID.Hex(), fx.approver.FullName, "")

	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, utils.CodeConflict, appErr.Code)
	assert.Contains(t, appErr.Message, models.SaleStatusRejected)
	assert.Empty(t, fx.notifications.byType(models.NotificationTypeSaleApproved))
}

func TestResolve_NotificationFailureDoesNotFailTransition(t *testing.T) {
	// GIVEN: The notification store is down
	// WHEN: A sale is approved
	// THEN: The transition still succeeds; the dispatch failure is only
	//       logged

	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 500, "renewal")
	fx.notifications.failInsert = true

	status, err := fx.service.Resolve(context.Background(), sale.ID.Hex(), models.SaleStatusApproved,
		fx.approver.ID.Hex(), fx.approver.FullName, "")

	require.NoError(t, err)
	assert.Equal(t, models.SaleStatusApproved, status)

	stored, _ := fx.sales.FindByID(context.Background(), sale.ID)
	assert.Equal(t, models.SaleStatusApproved, stored.Status)
}

func TestResolve_MailerFailureDoesNotFailTransition(t *testing.T) {
	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 500, "renewal")
	fx.mailer.fail = true

	_, err := fx.service.Resolve(context.Background(), sale.ID.Hex(), models.SaleStatusApproved,
		fx.approver.ID.Hex(), fx.approver.FullName, "")

	require.NoError(t, err)
}

func TestResolve_EmailsRepOnResolution(t *testing.T) {
	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 500, "renewal")

	_, err := fx.service.Resolve(context.Background(), sale.ID.Hex(), models.SaleStatusApproved,
		fx.approver.ID.Hex(), fx.approver.FullName, "")

	require.NoError(t, err)
	require.Len(t, fx.mailer.sent, 1)
	assert.Equal(t, "rep@example.com", fx.mailer.sent[0])
}

func TestGetByID_ScopedToOwnerWithoutViewAll(t *testing.T) {
	// GIVEN: A sale owned by one rep
	// WHEN: The owner, another rep and a view-all approver fetch it
	// THEN: Only the owner and the approver see it; the other rep gets
	//       not-found so the response does not reveal the sale exists

	fx := newSaleFixture(t)
	sale := fx.submitSale(t, 100, "renewal")
	ctx := context.Background()

	got, err := fx.service.GetByID(ctx, sale.ID.Hex(), fx.rep.ID.Hex(), false)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)

	otherRep := fx.users.add(&models.User{
		Email:    "other@example.com",
		FullName: "Noa Other",
		Role:     models.RoleSalesRep,
		Status:   models.UserStatusActive,
	})
	_, err = fx.service.GetByID(ctx, sale.ID.Hex(), otherRep.ID.Hex(), false)
	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, utils.AsAppError(err).Code)

	got, err = fx.service.GetByID(ctx, sale.ID.Hex(), fx.approver.ID.Hex(), true)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
}

func saleResolutionFor(approverID primitive.ObjectID, status string) repositories.SaleResolution {
	return repositories.SaleResolution{
		Status:       status,
		ApprovedBy:   approverID,
		ApproverName: "Winner",
		ApprovedAt:   time.Now(),
	}
}
