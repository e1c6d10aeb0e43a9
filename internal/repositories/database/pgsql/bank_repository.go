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

// PgxBankRepository is the owner-scoped store for banks.
type PgxBankRepository struct {
	db *pgxpool.Pool
}

// NewPgxBankRepository creates the bank repository.
func NewPgxBankRepository(db *pgxpool.Pool) portsrepo.SyncRepository {
	return &PgxBankRepository{db: db}
}

var _ portsrepo.SyncRepository = (*PgxBankRepository)(nil)

func (r *PgxBankRepository) Table() domain.Table {
	return domain.TableBanks
}

const bankColumns = `id, user_id, code, name, description, agency, account, color, created_at, updated_at, deleted_at`

func scanBank(row pgx.Row) (models.Bank, error) {
	var m models.Bank
	err := row.Scan(&m.ID, &m.UserID, &m.Code, &m.Name, &m.Description, &m.Agency, &m.Account, &m.Color, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	return m, err
}

func bankToSyncRow(m models.Bank) domain.SyncRow {
	return domain.SyncRow{
		ID:        m.ID,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
		Data:      codec.BankToClient(m),
	}
}

func (r *PgxBankRepository) Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error) {
	m := models.Bank{UserID: ownerID, Color: models.DefaultBankColor}
	codec.ApplyBank(rec, &m)
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO banks (user_id, code, name, description, agency, account, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, m.UserID, m.Code, m.Name, m.Description, m.Agency, m.Account, m.Color, m.CreatedAt, m.UpdatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert bank: %w", err)
	}
	return id, nil
}

func (r *PgxBankRepository) find(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (models.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE id = $1 AND user_id = $2`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	m, err := scanBank(r.db.QueryRow(ctx, query, serverID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bank{}, apperrors.ErrNotFound
		}
		return models.Bank{}, fmt.Errorf("failed to find bank %d: %w", serverID, err)
	}
	return m, nil
}

func (r *PgxBankRepository) FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error) {
	m, err := r.find(ctx, ownerID, serverID, includeDeleted)
	if err != nil {
		return nil, err
	}
	row := bankToSyncRow(m)
	return &row, nil
}

func (r *PgxBankRepository) Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error) {
	m, err := r.find(ctx, ownerID, serverID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	codec.ApplyBank(rec, &m)
	m.UpdatedAt = now

	query := `
		UPDATE banks
		SET code = $1, name = $2, description = $3, agency = $4, account = $5, color = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9 AND updated_at = $10;
	`
	tag, err := r.db.Exec(ctx, query, m.Code, m.Name, m.Description, m.Agency, m.Account, m.Color, m.UpdatedAt, serverID, ownerID, prevUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update bank %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxBankRepository) SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error) {
	query := `
		UPDATE banks
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, now, serverID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete bank %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxBankRepository) ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE user_id = $1`
	args := []any{ownerID}
	if since != nil {
		query += ` AND updated_at > $2`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY updated_at ASC, id ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed banks: %w", err)
	}
	defer rows.Close()

	var result []domain.SyncRow
	for rows.Next() {
		m, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		result = append(result, bankToSyncRow(m))
	}
	return result, rows.Err()
}

func (r *PgxBankRepository) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM banks WHERE user_id = $1 AND deleted_at IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count banks: %w", err)
	}
	return count, nil
}
