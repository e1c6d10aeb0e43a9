package models

// AccountType is a top-level spending/income category (e.g. Housing, Health).
// The mobile client treats these as global; the server keeps them per user for
// tenant isolation.
type AccountType struct {
	ID     int64   `db:"id"`
	UserID int64   `db:"user_id"`
	Name   string  `db:"name"`
	Logo   *string `db:"logo"`
	SyncFields
}
