package models

// PaymentMethod usage scopes. The client stores the enum as an integer.
const (
	PaymentMethodUsagePay     = 0 // payments only
	PaymentMethodUsageReceive = 1 // receipts only
	PaymentMethodUsageBoth    = 2
)

// PaymentMethod is a way money moves (cash, debit, PIX, credit card, ...).
type PaymentMethod struct {
	ID           int64   `db:"id"`
	UserID       int64   `db:"user_id"`
	Name         string  `db:"name"`
	Type         string  `db:"type"`
	IconCode     int     `db:"icon_code"`
	RequiresBank bool    `db:"requires_bank"`
	IsActive     bool    `db:"is_active"`
	Usage        int     `db:"usage"`
	Logo         *string `db:"logo"`
	SyncFields
}
