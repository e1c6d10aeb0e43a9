package services

import (
	"context"

	"github.com/psoares/finsync/internal/dto"
)

// SyncSvcFacade is the sync engine as the handlers see it.
type SyncSvcFacade interface {
	// Push ingests one table's batch of client changes and returns per-item
	// outcomes. Call-level problems (unsupported table) return an error;
	// item-level problems land in the response lists.
	Push(ctx context.Context, ownerID int64, req dto.SyncPushRequest) (*dto.SyncPushResponse, error)

	// Pull returns the owner's changes for one table since the given
	// ISO-8601 checkpoint; an empty since means initial sync.
	Pull(ctx context.Context, ownerID int64, table, since string) (*dto.SyncPullResponse, error)

	// Status reports per-table row counts and the supported table set.
	Status(ctx context.Context, ownerID int64) (*dto.SyncStatusResponse, error)
}

// UserDataSvcFacade covers whole-account data operations.
type UserDataSvcFacade interface {
	// WipeData removes every row the owner has, across all sync tables.
	WipeData(ctx context.Context, ownerID int64) (*dto.WipeDataResponse, error)

	// SeedDefaults creates the default account types and payment methods for
	// a fresh owner. Tables that already hold live rows are left alone.
	SeedDefaults(ctx context.Context, ownerID int64) (*dto.SeedDefaultsResponse, error)
}

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	Sync     SyncSvcFacade
	UserData UserDataSvcFacade
}
