package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psoares/finsync/internal/apperrors"
	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
	"github.com/psoares/finsync/internal/models"
)

// PgxAccountTypeRepository is the owner-scoped store for account_types.
type PgxAccountTypeRepository struct {
	db *pgxpool.Pool
}

// NewPgxAccountTypeRepository creates the account type repository.
func NewPgxAccountTypeRepository(db *pgxpool.Pool) portsrepo.SyncRepository {
	return &PgxAccountTypeRepository{db: db}
}

var _ portsrepo.SyncRepository = (*PgxAccountTypeRepository)(nil)

func (r *PgxAccountTypeRepository) Table() domain.Table {
	return domain.TableAccountTypes
}

const accountTypeColumns = `id, user_id, name, logo, created_at, updated_at, deleted_at`

func scanAccountType(row pgx.Row) (models.AccountType, error) {
	var m models.AccountType
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Logo, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	return m, err
}

func accountTypeToSyncRow(m models.AccountType) domain.SyncRow {
	return domain.SyncRow{
		ID:        m.ID,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
		Data:      codec.AccountTypeToClient(m),
	}
}

func (r *PgxAccountTypeRepository) Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error) {
	m := models.AccountType{UserID: ownerID}
	codec.ApplyAccountType(rec, &m)
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO account_types (user_id, name, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, m.UserID, m.Name, m.Logo, m.CreatedAt, m.UpdatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert account type: %w", err)
	}
	return id, nil
}

func (r *PgxAccountTypeRepository) find(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (models.AccountType, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types WHERE id = $1 AND user_id = $2`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	m, err := scanAccountType(r.db.QueryRow(ctx, query, serverID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AccountType{}, apperrors.ErrNotFound
		}
		return models.AccountType{}, fmt.Errorf("failed to find account type %d: %w", serverID, err)
	}
	return m, nil
}

func (r *PgxAccountTypeRepository) FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error) {
	m, err := r.find(ctx, ownerID, serverID, includeDeleted)
	if err != nil {
		return nil, err
	}
	row := accountTypeToSyncRow(m)
	return &row, nil
}

func (r *PgxAccountTypeRepository) Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error) {
	m, err := r.find(ctx, ownerID, serverID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	codec.ApplyAccountType(rec, &m)
	m.UpdatedAt = now

	query := `
		UPDATE account_types
		SET name = $1, logo = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5 AND updated_at = $6;
	`
	tag, err := r.db.Exec(ctx, query, m.Name, m.Logo, m.UpdatedAt, serverID, ownerID, prevUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update account type %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxAccountTypeRepository) SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error) {
	query := `
		UPDATE account_types
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, now, serverID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete account type %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxAccountTypeRepository) ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error) {
	query := `SELECT ` + accountTypeColumns + ` FROM account_types WHERE user_id = $1`
	args := []any{ownerID}
	if since != nil {
		query += ` AND updated_at > $2`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY updated_at ASC, id ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed account types: %w", err)
	}
	defer rows.Close()

	var result []domain.SyncRow
	for rows.Next() {
		m, err := scanAccountType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account type: %w", err)
		}
		result = append(result, accountTypeToSyncRow(m))
	}
	return result, rows.Err()
}

func (r *PgxAccountTypeRepository) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM account_types WHERE user_id = $1 AND deleted_at IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count account types: %w", err)
	}
	return count, nil
}
