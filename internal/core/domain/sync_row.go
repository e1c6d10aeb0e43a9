package domain

import (
	"time"

	"github.com/psoares/finsync/internal/codec"
)

// SyncRow is the storage-agnostic envelope the sync engine works with: the
// server identity and timestamps of a row plus its client-shaped payload.
type SyncRow struct {
	ID        int64
	UpdatedAt time.Time
	DeletedAt *time.Time
	Data      codec.Record
}

// IsDeleted reports whether the row is soft-deleted.
func (r SyncRow) IsDeleted() bool {
	return r.DeletedAt != nil
}
