package domain

// Table enumerates the synchronizable entity tables. Sync requests carry the
// table name as a string; ParseTable is the only place that string is trusted.
type Table string

const (
	TableAccountTypes        Table = "account_types"
	TableAccountDescriptions Table = "account_descriptions"
	TablePaymentMethods      Table = "payment_methods"
	TableBanks               Table = "banks"
	TableAccounts            Table = "accounts"
	TablePayments            Table = "payments"
)

// SupportedTables returns the sync tables in dependency order: parents before
// the rows that reference them, so a client doing an initial pull table by
// table never receives a dangling foreign key.
func SupportedTables() []Table {
	return []Table{
		TableAccountTypes,
		TableAccountDescriptions,
		TablePaymentMethods,
		TableBanks,
		TableAccounts,
		TablePayments,
	}
}

// ParseTable maps a client-supplied table name onto the enum.
func ParseTable(name string) (Table, bool) {
	switch Table(name) {
	case TableAccountTypes, TableAccountDescriptions, TablePaymentMethods,
		TableBanks, TableAccounts, TablePayments:
		return Table(name), true
	}
	return "", false
}

func (t Table) String() string {
	return string(t)
}
