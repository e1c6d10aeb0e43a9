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

// PgxSubcategoryRepository is the owner-scoped store for the
// account_descriptions table (the client's name for subcategories).
type PgxSubcategoryRepository struct {
	db *pgxpool.Pool
}

// NewPgxSubcategoryRepository creates the subcategory repository.
func NewPgxSubcategoryRepository(db *pgxpool.Pool) portsrepo.SyncRepository {
	return &PgxSubcategoryRepository{db: db}
}

var _ portsrepo.SyncRepository = (*PgxSubcategoryRepository)(nil)

func (r *PgxSubcategoryRepository) Table() domain.Table {
	return domain.TableAccountDescriptions
}

const subcategoryColumns = `id, user_id, account_id, description, logo, created_at, updated_at, deleted_at`

func scanSubcategory(row pgx.Row) (models.Subcategory, error) {
	var m models.Subcategory
	err := row.Scan(&m.ID, &m.UserID, &m.AccountTypeID, &m.Description, &m.Logo, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	return m, err
}

func subcategoryToSyncRow(m models.Subcategory) domain.SyncRow {
	return domain.SyncRow{
		ID:        m.ID,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
		Data:      codec.SubcategoryToClient(m),
	}
}

func (r *PgxSubcategoryRepository) Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error) {
	m := models.Subcategory{UserID: ownerID}
	codec.ApplySubcategory(rec, &m)
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO account_descriptions (user_id, account_id, description, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, m.UserID, m.AccountTypeID, m.Description, m.Logo, m.CreatedAt, m.UpdatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert subcategory: %w", err)
	}
	return id, nil
}

func (r *PgxSubcategoryRepository) find(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (models.Subcategory, error) {
	query := `SELECT ` + subcategoryColumns + ` FROM account_descriptions WHERE id = $1 AND user_id = $2`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	m, err := scanSubcategory(r.db.QueryRow(ctx, query, serverID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Subcategory{}, apperrors.ErrNotFound
		}
		return models.Subcategory{}, fmt.Errorf("failed to find subcategory %d: %w", serverID, err)
	}
	return m, nil
}

func (r *PgxSubcategoryRepository) FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error) {
	m, err := r.find(ctx, ownerID, serverID, includeDeleted)
	if err != nil {
		return nil, err
	}
	row := subcategoryToSyncRow(m)
	return &row, nil
}

func (r *PgxSubcategoryRepository) Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error) {
	m, err := r.find(ctx, ownerID, serverID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	codec.ApplySubcategory(rec, &m)
	m.UpdatedAt = now

	query := `
		UPDATE account_descriptions
		SET account_id = $1, description = $2, logo = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6 AND updated_at = $7;
	`
	tag, err := r.db.Exec(ctx, query, m.AccountTypeID, m.Description, m.Logo, m.UpdatedAt, serverID, ownerID, prevUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update subcategory %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxSubcategoryRepository) SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error) {
	query := `
		UPDATE account_descriptions
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, now, serverID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete subcategory %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxSubcategoryRepository) ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error) {
	query := `SELECT ` + subcategoryColumns + ` FROM account_descriptions WHERE user_id = $1`
	args := []any{ownerID}
	if since != nil {
		query += ` AND updated_at > $2`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY updated_at ASC, id ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed subcategories: %w", err)
	}
	defer rows.Close()

	var result []domain.SyncRow
	for rows.Next() {
		m, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		result = append(result, subcategoryToSyncRow(m))
	}
	return result, rows.Err()
}

func (r *PgxSubcategoryRepository) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM account_descriptions WHERE user_id = $1 AND deleted_at IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subcategories: %w", err)
	}
	return count, nil
}
