package repositories

import (
	"context"
	"time"

	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
)

// SyncRepository is the owner-scoped persistence boundary for one sync table.
// Every operation filters by ownerID; there is no way to reach another
// owner's rows through this interface.
type SyncRepository interface {
	// Table identifies which sync table this repository serves.
	Table() domain.Table

	// Create persists a client record with server-assigned identity, stamping
	// created_at and updated_at to now. Identity and owner fields inside rec
	// are ignored.
	Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error)

	// FindByID returns the row for (serverID, ownerID), optionally including
	// soft-deleted rows. Returns apperrors.ErrNotFound when absent.
	FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error)

	// Update applies the fields present in rec over the stored row and stamps
	// updated_at to now, but only while the stored updated_at still equals
	// prevUpdatedAt. Returns false when the guard fails or the row is gone,
	// so a concurrent mutation surfaces as a conflict instead of a lost
	// update.
	Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error)

	// SoftDelete stamps deleted_at and updated_at to now. Returns false when
	// the row does not exist or is already deleted.
	SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error)

	// ChangedSince returns rows (soft-deleted included) with updated_at
	// strictly after since, ordered by updated_at then id ascending, capped
	// at limit. A nil since means everything the owner has.
	ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error)

	// CountActive counts the owner's live rows.
	CountActive(ctx context.Context, ownerID int64) (int64, error)
}

// OwnershipReader resolves who owns a live row of a given table. The
// ownership validator uses it to check client-supplied foreign keys.
type OwnershipReader interface {
	// FindOwner returns the owner of the non-soft-deleted row with the given
	// id, or found=false when no such live row exists.
	FindOwner(ctx context.Context, table domain.Table, id int64) (ownerID int64, found bool, err error)
}

// UserDataRepository removes every row an owner has, across all sync tables,
// in one transaction.
type UserDataRepository interface {
	// PurgeOwner hard-deletes the owner's rows in FK-safe order and returns
	// the per-table counts of removed rows.
	PurgeOwner(ctx context.Context, ownerID int64) (map[domain.Table]int64, error)
}
