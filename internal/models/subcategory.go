package models

// Subcategory refines an AccountType. The client calls this entity
// "account_descriptions" and its parent-type FK "accountId"; the column is
// kept as account_id to match the client's naming.
type Subcategory struct {
	ID            int64   `db:"id"`
	UserID        int64   `db:"user_id"`
	AccountTypeID int64   `db:"account_id"`
	Description   string  `db:"description"`
	Logo          *string `db:"logo"`
	SyncFields
}
