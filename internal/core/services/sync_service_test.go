package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/psoares/finsync/internal/apperrors"
	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
	portssvc "github.com/psoares/finsync/internal/core/ports/services"
	"github.com/psoares/finsync/internal/core/services"
	"github.com/psoares/finsync/internal/dto"
)

// --- Test Suite ---
type SyncServiceTestSuite struct {
	suite.Suite
	accountTypes   *MockSyncRepository
	subcategories  *MockSyncRepository
	paymentMethods *MockSyncRepository
	banks          *MockSyncRepository
	accounts       *MockSyncRepository
	payments       *MockSyncRepository
	ownership      *MockOwnershipReader
	serverTime     time.Time
	service        portssvc.SyncSvcFacade
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.accountTypes = &MockSyncRepository{table: domain.TableAccountTypes}
	suite.subcategories = &MockSyncRepository{table: domain.TableAccountDescriptions}
	suite.paymentMethods = &MockSyncRepository{table: domain.TablePaymentMethods}
	suite.banks = &MockSyncRepository{table: domain.TableBanks}
	suite.accounts = &MockSyncRepository{table: domain.TableAccounts}
	suite.payments = &MockSyncRepository{table: domain.TablePayments}
	suite.ownership = new(MockOwnershipReader)
	suite.serverTime = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	repos := portsrepo.RepositoryProvider{
		AccountTypes:   suite.accountTypes,
		Subcategories:  suite.subcategories,
		PaymentMethods: suite.paymentMethods,
		Banks:          suite.banks,
		Accounts:       suite.accounts,
		Payments:       suite.payments,
		Ownership:      suite.ownership,
	}
	suite.service = services.NewSyncService(
		repos,
		services.NewOwnershipValidator(suite.ownership),
		services.WithClock(func() time.Time { return suite.serverTime }),
	)
}

// --- Push ---

func (suite *SyncServiceTestSuite) TestPush_UnsupportedTable() {
	resp, err := suite.service.Push(context.Background(), 1, dto.SyncPushRequest{Table: "users"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnsupportedTable)
}

func (suite *SyncServiceTestSuite) TestPush_CreateReturnsIDMapping() {
	ctx := context.Background()
	rec := codec.Record{"localId": float64(3), "name": "Nubank", "agency": "0001", "account": "12345-6"}

	suite.banks.On("Create", ctx, int64(1), rec, suite.serverTime).Return(int64(101), nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Creates: []codec.Record{rec},
	})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Created, 1)
	suite.Equal(float64(3), resp.Created[0].LocalID)
	suite.Equal(int64(101), resp.Created[0].ServerID)
	suite.Empty(resp.Rejected)
	suite.Equal(codec.FormatTime(suite.serverTime), resp.ServerTimestamp)
	suite.banks.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_CreateRejectedOnCrossTenantFK() {
	ctx := context.Background()
	rec := codec.Record{"localId": "tmp-1", "description": "Mercado", "typeId": float64(5)}

	// typeId 5 exists but belongs to user 99, not user 1
	suite.ownership.On("FindOwner", ctx, domain.TableAccountTypes, int64(5)).Return(int64(99), true, nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "accounts",
		Creates: []codec.Record{rec},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Created)
	suite.Require().Len(resp.Rejected, 1)
	suite.Equal("tmp-1", resp.Rejected[0].LocalID)
	suite.Equal("FK validation failed", resp.Rejected[0].Reason)
	suite.Contains(resp.Rejected[0].Errors, "type_id=5 does not belong to user")
	suite.accounts.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.ownership.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_CreateRejectionAccumulatesAllFKErrors() {
	ctx := context.Background()
	rec := codec.Record{"typeId": float64(5), "categoryId": float64(8)}

	suite.ownership.On("FindOwner", ctx, domain.TableAccountTypes, int64(5)).Return(int64(0), false, nil).Once()
	suite.ownership.On("FindOwner", ctx, domain.TableAccountDescriptions, int64(8)).Return(int64(99), true, nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "accounts",
		Creates: []codec.Record{rec},
	})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Rejected, 1)
	suite.Len(resp.Rejected[0].Errors, 2)
	suite.Contains(resp.Rejected[0].Errors, "type_id=5 not found")
	suite.Contains(resp.Rejected[0].Errors, "category_id=8 does not belong to user")
	suite.ownership.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_RejectedItemDoesNotAbortSiblings() {
	ctx := context.Background()
	bad := codec.Record{"localId": float64(1), "typeId": float64(5)}
	good := codec.Record{"localId": float64(2), "typeId": float64(6), "description": "Luz"}

	suite.ownership.On("FindOwner", ctx, domain.TableAccountTypes, int64(5)).Return(int64(99), true, nil).Once()
	suite.ownership.On("FindOwner", ctx, domain.TableAccountTypes, int64(6)).Return(int64(1), true, nil).Once()
	suite.accounts.On("Create", ctx, int64(1), good, suite.serverTime).Return(int64(201), nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "accounts",
		Creates: []codec.Record{bad, good},
	})

	suite.Require().NoError(err)
	suite.Len(resp.Rejected, 1)
	suite.Require().Len(resp.Created, 1)
	suite.Equal(int64(201), resp.Created[0].ServerID)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_UpdateApplied() {
	ctx := context.Background()
	stored := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	rec := codec.Record{
		"server_id":  float64(42),
		"updated_at": codec.FormatTime(stored),
		"name":       "Itaú",
	}
	row := &domain.SyncRow{ID: 42, UpdatedAt: stored, Data: codec.Record{"id": int64(42)}}

	suite.banks.On("FindByID", ctx, int64(1), int64(42), true).Return(row, nil).Once()
	suite.banks.On("Update", ctx, int64(1), int64(42), rec, stored, suite.serverTime).Return(true, nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Updates: []codec.Record{rec},
	})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Updated, 1)
	suite.Equal(int64(42), resp.Updated[0].ServerID)
	suite.Empty(resp.Conflicts)
	suite.banks.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_UpdateConflictWhenServerNewer() {
	ctx := context.Background()
	clientKnown := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	serverNewer := clientKnown.Add(time.Hour)
	serverData := codec.Record{"id": int64(42), "name": "Itaú Personnalité"}
	rec := codec.Record{
		"server_id":  float64(42),
		"updated_at": codec.FormatTime(clientKnown),
		"name":       "Itaú",
	}

	suite.banks.On("FindByID", ctx, int64(1), int64(42), true).
		Return(&domain.SyncRow{ID: 42, UpdatedAt: serverNewer, Data: serverData}, nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Updates: []codec.Record{rec},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Updated)
	suite.Require().Len(resp.Conflicts, 1)
	suite.Equal(int64(42), resp.Conflicts[0].ServerID)
	suite.Equal(serverData, resp.Conflicts[0].ServerData)
	suite.banks.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestPush_UpdateLostRaceBecomesConflict() {
	ctx := context.Background()
	stored := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	rec := codec.Record{"server_id": float64(42), "updated_at": codec.FormatTime(stored)}
	staleRow := &domain.SyncRow{ID: 42, UpdatedAt: stored, Data: codec.Record{"id": int64(42)}}
	freshData := codec.Record{"id": int64(42), "name": "renamed elsewhere"}

	suite.banks.On("FindByID", ctx, int64(1), int64(42), true).Return(staleRow, nil).Once()
	// Guarded write fails: someone mutated the row between read and write.
	suite.banks.On("Update", ctx, int64(1), int64(42), rec, stored, suite.serverTime).Return(false, nil).Once()
	suite.banks.On("FindByID", ctx, int64(1), int64(42), true).
		Return(&domain.SyncRow{ID: 42, UpdatedAt: stored.Add(time.Minute), Data: freshData}, nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Updates: []codec.Record{rec},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Updated)
	suite.Require().Len(resp.Conflicts, 1)
	suite.Equal(freshData, resp.Conflicts[0].ServerData)
	suite.banks.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_UpdateWithoutServerIDSkipped() {
	ctx := context.Background()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Updates: []codec.Record{{"name": "no id here"}},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Updated)
	suite.Empty(resp.Conflicts)
	suite.Empty(resp.Rejected)
	suite.banks.AssertNotCalled(suite.T(), "FindByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncServiceTestSuite) TestPush_UpdateMissingRowSkipped() {
	ctx := context.Background()
	rec := codec.Record{"server_id": float64(77)}

	suite.banks.On("FindByID", ctx, int64(1), int64(77), true).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Updates: []codec.Record{rec},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Updated)
	suite.Empty(resp.Conflicts)
	suite.banks.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_DeleteAlreadyGoneIsBenign() {
	ctx := context.Background()

	suite.banks.On("SoftDelete", ctx, int64(1), int64(9), suite.serverTime).Return(false, nil).Once()

	resp, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Deletes: []int64{9},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Rejected)
	suite.banks.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPush_DeleteStampsServerTime() {
	ctx := context.Background()

	suite.banks.On("SoftDelete", ctx, int64(1), int64(9), suite.serverTime).Return(true, nil).Once()
	suite.banks.On("SoftDelete", ctx, int64(1), int64(10), suite.serverTime).Return(true, nil).Once()

	_, err := suite.service.Push(ctx, 1, dto.SyncPushRequest{
		Table:   "banks",
		Deletes: []int64{9, 10},
	})

	suite.Require().NoError(err)
	suite.banks.AssertExpectations(suite.T())
}

// --- Pull ---

func (suite *SyncServiceTestSuite) TestPull_InitialSyncPartitionsDeleted() {
	ctx := context.Background()
	deletedAt := suite.serverTime.Add(-time.Hour)
	rows := []domain.SyncRow{
		{ID: 1, UpdatedAt: suite.serverTime.Add(-2 * time.Hour), Data: codec.Record{"id": int64(1)}},
		{ID: 2, UpdatedAt: deletedAt, DeletedAt: &deletedAt, Data: codec.Record{"id": int64(2)}},
	}

	suite.banks.On("ChangedSince", ctx, int64(1), (*time.Time)(nil), services.DefaultSyncPageSize).Return(rows, nil).Once()

	resp, err := suite.service.Pull(ctx, 1, "banks", "")

	suite.Require().NoError(err)
	suite.Require().Len(resp.Records, 1)
	suite.Equal(codec.Record{"id": int64(1)}, resp.Records[0])
	suite.Equal([]int64{2}, resp.Deleted)
	suite.Equal(int64(1), resp.OwnerID)
	suite.False(resp.HasMore)
	suite.Equal(codec.FormatTime(suite.serverTime), resp.ServerTimestamp)
	suite.banks.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPull_PassesCheckpoint() {
	ctx := context.Background()
	since := "2025-06-01T00:00:00Z"
	parsed, _ := time.Parse(time.RFC3339Nano, since)

	suite.banks.On("ChangedSince", ctx, int64(1), &parsed, services.DefaultSyncPageSize).
		Return([]domain.SyncRow{}, nil).Once()

	resp, err := suite.service.Pull(ctx, 1, "banks", since)

	suite.Require().NoError(err)
	suite.Empty(resp.Records)
	suite.Empty(resp.Deleted)
	suite.NotNil(resp.Records)
	suite.NotNil(resp.Deleted)
	suite.banks.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestPull_InvalidSinceRejected() {
	resp, err := suite.service.Pull(context.Background(), 1, "banks", "yesterday")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SyncServiceTestSuite) TestPull_UnsupportedTable() {
	resp, err := suite.service.Pull(context.Background(), 1, "sessions", "")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnsupportedTable)
}

func (suite *SyncServiceTestSuite) TestPull_FullPageSetsHasMore() {
	ctx := context.Background()
	repos := portsrepo.RepositoryProvider{Banks: suite.banks}
	svc := services.NewSyncService(
		repos,
		services.NewOwnershipValidator(suite.ownership),
		services.WithSyncPageSize(2),
		services.WithClock(func() time.Time { return suite.serverTime }),
	)
	rows := []domain.SyncRow{
		{ID: 1, UpdatedAt: suite.serverTime, Data: codec.Record{"id": int64(1)}},
		{ID: 2, UpdatedAt: suite.serverTime, Data: codec.Record{"id": int64(2)}},
	}

	suite.banks.On("ChangedSince", ctx, int64(1), (*time.Time)(nil), 2).Return(rows, nil).Once()

	resp, err := svc.Pull(ctx, 1, "banks", "")

	suite.Require().NoError(err)
	suite.True(resp.HasMore)
	suite.banks.AssertExpectations(suite.T())
}

// --- Status ---

func (suite *SyncServiceTestSuite) TestStatus_CountsEveryTable() {
	ctx := context.Background()

	suite.accountTypes.On("CountActive", ctx, int64(1)).Return(int64(6), nil).Once()
	suite.subcategories.On("CountActive", ctx, int64(1)).Return(int64(12), nil).Once()
	suite.paymentMethods.On("CountActive", ctx, int64(1)).Return(int64(6), nil).Once()
	suite.banks.On("CountActive", ctx, int64(1)).Return(int64(2), nil).Once()
	suite.accounts.On("CountActive", ctx, int64(1)).Return(int64(140), nil).Once()
	suite.payments.On("CountActive", ctx, int64(1)).Return(int64(95), nil).Once()

	resp, err := suite.service.Status(ctx, 1)

	suite.Require().NoError(err)
	suite.Equal(int64(140), resp.Tables["accounts"])
	suite.Equal(int64(95), resp.Tables["payments"])
	suite.Len(resp.Tables, 6)
	suite.Equal([]string{
		"account_types", "account_descriptions", "payment_methods",
		"banks", "accounts", "payments",
	}, resp.SupportedTables)
}

func (suite *SyncServiceTestSuite) TestStatus_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.accountTypes.On("CountActive", ctx, int64(1)).Return(int64(0), expectedErr).Once()

	resp, err := suite.service.Status(ctx, 1)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestSyncService(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
