package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psoares/finsync/internal/core/domain"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
)

// PgxUserDataRepository performs bulk operations across every entity table
// owned by a single user.
type PgxUserDataRepository struct {
	db *pgxpool.Pool
}

// NewPgxUserDataRepository creates the user-data repository.
func NewPgxUserDataRepository(db *pgxpool.Pool) portsrepo.UserDataRepository {
	return &PgxUserDataRepository{db: db}
}

var _ portsrepo.UserDataRepository = (*PgxUserDataRepository)(nil)

// PurgeOwner hard-deletes every row belonging to ownerID, children before
// parents so foreign keys never block the delete. All tables go in one
// transaction: a wipe is all or nothing.
func (r *PgxUserDataRepository) PurgeOwner(ctx context.Context, ownerID int64) (map[domain.Table]int64, error) {
	order := []domain.Table{
		domain.TablePayments,
		domain.TableAccounts,
		domain.TableAccountDescriptions,
		domain.TablePaymentMethods,
		domain.TableBanks,
		domain.TableAccountTypes,
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin wipe transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleted := make(map[domain.Table]int64, len(order))
	for _, table := range order {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, table), ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to wipe %s: %w", table, err)
		}
		deleted[table] = tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit wipe transaction: %w", err)
	}
	return deleted, nil
}
