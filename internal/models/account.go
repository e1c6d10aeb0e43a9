package models

import "github.com/shopspring/decimal"

// Account is a payable/receivable obligation. When CardBrand is set the row is
// a credit card itself; CardID links an expense to its card, and RecurrenceID
// links a generated occurrence back to its recurrence template. Both are
// self-references into this same table and must stay plain identifiers, never
// in-memory object links, since card/recurrence chains can be arbitrarily long.
type Account struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`

	TypeID     int64  `db:"type_id"`
	CategoryID *int64 `db:"category_id"`

	Description    string           `db:"description"`
	Value          decimal.Decimal  `db:"value"`
	EstimatedValue *decimal.Decimal `db:"estimated_value"`

	DueDay int  `db:"due_day"`
	Month  *int `db:"month"`
	Year   *int `db:"year"`

	IsRecurrent  bool   `db:"is_recurrent"`
	PayInAdvance bool   `db:"pay_in_advance"`
	RecurrenceID *int64 `db:"recurrence_id"`

	InstallmentIndex *int    `db:"installment_index"`
	InstallmentTotal *int    `db:"installment_total"`
	PurchaseUUID     *string `db:"purchase_uuid"`

	BestBuyDay *int             `db:"best_buy_day"`
	CardBrand  *string          `db:"card_brand"`
	CardBank   *string          `db:"card_bank"`
	CardLimit  *decimal.Decimal `db:"card_limit"`
	CardColor  *int64           `db:"card_color"`
	CardID     *int64           `db:"card_id"`

	Logo          *string `db:"logo"`
	Observation   *string `db:"observation"`
	Establishment *string `db:"establishment"`
	PurchaseDate  *string `db:"purchase_date"`
	CreationDate  *string `db:"creation_date"`

	SyncFields
}

// IsCard reports whether the row represents a credit card rather than a bill.
func (a Account) IsCard() bool {
	return a.CardBrand != nil && *a.CardBrand != ""
}
