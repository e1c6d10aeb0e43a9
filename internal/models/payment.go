package models

import "github.com/shopspring/decimal"

// Payment is a realized payment event against an Account. CreditCardID points
// at an Account row that represents a card (CardBrand set), not at a separate
// card table.
type Payment struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`

	AccountID       int64  `db:"account_id"`
	PaymentMethodID int64  `db:"payment_method_id"`
	BankAccountID   *int64 `db:"bank_account_id"`
	CreditCardID    *int64 `db:"credit_card_id"`

	Value       decimal.Decimal `db:"value"`
	PaymentDate string          `db:"payment_date"`
	Observation *string         `db:"observation"`

	SyncFields
}
