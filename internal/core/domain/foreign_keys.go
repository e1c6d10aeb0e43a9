package domain

// ForeignKey describes one ownership-checked foreign key a table carries on
// the wire. Keys lists the client field names that may hold the value,
// canonical spelling first. Label is the identifier used in rejection
// messages and security logs.
type ForeignKey struct {
	Keys  []string
	Label string
	Ref   Table
}

// ForeignKeys returns the ownership-checked foreign keys for a table. Tables
// absent here (account_types, payment_methods, banks) carry no client-settable
// foreign keys and validate trivially.
func ForeignKeys(t Table) []ForeignKey {
	switch t {
	case TableAccountDescriptions:
		return []ForeignKey{
			{Keys: []string{"accountId", "account_id"}, Label: "account_type_id", Ref: TableAccountTypes},
		}
	case TableAccounts:
		return []ForeignKey{
			{Keys: []string{"typeId", "type_id"}, Label: "type_id", Ref: TableAccountTypes},
			{Keys: []string{"categoryId", "category_id"}, Label: "category_id", Ref: TableAccountDescriptions},
			{Keys: []string{"cardId", "card_id"}, Label: "card_id", Ref: TableAccounts},
			{Keys: []string{"recurrenceId", "recurrence_id"}, Label: "recurrence_id", Ref: TableAccounts},
		}
	case TablePayments:
		return []ForeignKey{
			{Keys: []string{"account_id", "accountId"}, Label: "account_id", Ref: TableAccounts},
			{Keys: []string{"payment_method_id", "paymentMethodId"}, Label: "payment_method_id", Ref: TablePaymentMethods},
			{Keys: []string{"bank_account_id", "bankAccountId"}, Label: "bank_account_id", Ref: TableBanks},
			{Keys: []string{"credit_card_id", "creditCardId"}, Label: "credit_card_id", Ref: TableAccounts},
		}
	}
	return nil
}
