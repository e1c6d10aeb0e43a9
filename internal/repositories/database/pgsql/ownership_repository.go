package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psoares/finsync/internal/core/domain"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
)

// PgxOwnershipRepository resolves which user owns a referenced row. The table
// name interpolated into the query always comes from the domain.Table enum,
// never from request input.
type PgxOwnershipRepository struct {
	db *pgxpool.Pool
}

// NewPgxOwnershipRepository creates the ownership reader.
func NewPgxOwnershipRepository(db *pgxpool.Pool) portsrepo.OwnershipReader {
	return &PgxOwnershipRepository{db: db}
}

var _ portsrepo.OwnershipReader = (*PgxOwnershipRepository)(nil)

func (r *PgxOwnershipRepository) FindOwner(ctx context.Context, table domain.Table, id int64) (int64, bool, error) {
	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE id = $1 AND deleted_at IS NULL`, table)
	var ownerID int64
	err := r.db.QueryRow(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve owner of %s %d: %w", table, id, err)
	}
	return ownerID, true, nil
}
