package models

import "time"

// SyncFields carries the timestamps every syncable row has. UpdatedAt is
// server-stamped on each mutation and drives both conflict detection and
// incremental pull. A non-nil DeletedAt means the row is soft-deleted; the
// row itself is never removed so the deletion can be synchronized.
type SyncFields struct {
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// IsDeleted reports whether the row is soft-deleted.
func (f SyncFields) IsDeleted() bool {
	return f.DeletedAt != nil
}
