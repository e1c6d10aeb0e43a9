package models

// DefaultBankColor is the display color used when the client omits one.
const DefaultBankColor int64 = 0xFF1565C0

// Bank is a user's bank account record (code is the national bank code,
// e.g. 001 for Banco do Brasil).
type Bank struct {
	ID          int64  `db:"id"`
	UserID      int64  `db:"user_id"`
	Code        int    `db:"code"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Agency      string `db:"agency"`
	Account     string `db:"account"`
	Color       int64  `db:"color"`
	SyncFields
}
