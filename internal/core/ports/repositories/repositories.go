package repositories

import "github.com/psoares/finsync/internal/core/domain"

// RepositoryProvider holds every repository the service layer needs. Keeping
// one field per sync table (instead of a map keyed by request strings) makes
// forgetting a table a compile error when the provider is assembled.
type RepositoryProvider struct {
	AccountTypes   SyncRepository
	Subcategories  SyncRepository
	PaymentMethods SyncRepository
	Banks          SyncRepository
	Accounts       SyncRepository
	Payments       SyncRepository

	Ownership OwnershipReader
	UserData  UserDataRepository
}

// ByTable returns the sync repository serving t, or nil when t is not a
// supported sync table.
func (p RepositoryProvider) ByTable(t domain.Table) SyncRepository {
	switch t {
	case domain.TableAccountTypes:
		return p.AccountTypes
	case domain.TableAccountDescriptions:
		return p.Subcategories
	case domain.TablePaymentMethods:
		return p.PaymentMethods
	case domain.TableBanks:
		return p.Banks
	case domain.TableAccounts:
		return p.Accounts
	case domain.TablePayments:
		return p.Payments
	}
	return nil
}
