package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository into the provider
// the service layer consumes.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountTypes:   NewPgxAccountTypeRepository(dbPool),
		Subcategories:  NewPgxSubcategoryRepository(dbPool),
		PaymentMethods: NewPgxPaymentMethodRepository(dbPool),
		Banks:          NewPgxBankRepository(dbPool),
		Accounts:       NewPgxAccountRepository(dbPool),
		Payments:       NewPgxPaymentRepository(dbPool),

		Ownership: NewPgxOwnershipRepository(dbPool),
		UserData:  NewPgxUserDataRepository(dbPool),
	}
}
