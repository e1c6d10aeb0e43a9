package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
)

// --- Mock SyncRepository ---
type MockSyncRepository struct {
	mock.Mock
	table domain.Table
}

func (m *MockSyncRepository) Table() domain.Table {
	return m.table
}

func (m *MockSyncRepository) Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, rec, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSyncRepository) FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error) {
	args := m.Called(ctx, ownerID, serverID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncRow), args.Error(1)
}

func (m *MockSyncRepository) Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error) {
	args := m.Called(ctx, ownerID, serverID, rec, prevUpdatedAt, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockSyncRepository) SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, ownerID, serverID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockSyncRepository) ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error) {
	args := m.Called(ctx, ownerID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncRow), args.Error(1)
}

func (m *MockSyncRepository) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock OwnershipReader ---
type MockOwnershipReader struct {
	mock.Mock
}

func (m *MockOwnershipReader) FindOwner(ctx context.Context, table domain.Table, id int64) (int64, bool, error) {
	args := m.Called(ctx, table, id)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// --- Mock UserDataRepository ---
type MockUserDataRepository struct {
	mock.Mock
}

func (m *MockUserDataRepository) PurgeOwner(ctx context.Context, ownerID int64) (map[domain.Table]int64, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Table]int64), args.Error(1)
}
