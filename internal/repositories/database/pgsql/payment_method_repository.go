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

// PgxPaymentMethodRepository is the owner-scoped store for payment_methods.
type PgxPaymentMethodRepository struct {
	db *pgxpool.Pool
}

// NewPgxPaymentMethodRepository creates the payment method repository.
func NewPgxPaymentMethodRepository(db *pgxpool.Pool) portsrepo.SyncRepository {
	return &PgxPaymentMethodRepository{db: db}
}

var _ portsrepo.SyncRepository = (*PgxPaymentMethodRepository)(nil)

func (r *PgxPaymentMethodRepository) Table() domain.Table {
	return domain.TablePaymentMethods
}

// usage is a reserved word in some Postgres contexts, hence the quoting.
const paymentMethodColumns = `id, user_id, name, type, icon_code, requires_bank, is_active, "usage", logo, created_at, updated_at, deleted_at`

func scanPaymentMethod(row pgx.Row) (models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Type, &m.IconCode, &m.RequiresBank, &m.IsActive, &m.Usage, &m.Logo, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	return m, err
}

func paymentMethodToSyncRow(m models.PaymentMethod) domain.SyncRow {
	return domain.SyncRow{
		ID:        m.ID,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
		Data:      codec.PaymentMethodToClient(m),
	}
}

func (r *PgxPaymentMethodRepository) Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error) {
	m := models.PaymentMethod{
		UserID:   ownerID,
		IsActive: true,
		Usage:    models.PaymentMethodUsageBoth,
	}
	codec.ApplyPaymentMethod(rec, &m)
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO payment_methods (user_id, name, type, icon_code, requires_bank, is_active, "usage", logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, m.UserID, m.Name, m.Type, m.IconCode, m.RequiresBank, m.IsActive, m.Usage, m.Logo, m.CreatedAt, m.UpdatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert payment method: %w", err)
	}
	return id, nil
}

func (r *PgxPaymentMethodRepository) find(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (models.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = $1 AND user_id = $2`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	m, err := scanPaymentMethod(r.db.QueryRow(ctx, query, serverID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PaymentMethod{}, apperrors.ErrNotFound
		}
		return models.PaymentMethod{}, fmt.Errorf("failed to find payment method %d: %w", serverID, err)
	}
	return m, nil
}

func (r *PgxPaymentMethodRepository) FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error) {
	m, err := r.find(ctx, ownerID, serverID, includeDeleted)
	if err != nil {
		return nil, err
	}
	row := paymentMethodToSyncRow(m)
	return &row, nil
}

func (r *PgxPaymentMethodRepository) Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error) {
	m, err := r.find(ctx, ownerID, serverID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	codec.ApplyPaymentMethod(rec, &m)
	m.UpdatedAt = now

	query := `
		UPDATE payment_methods
		SET name = $1, type = $2, icon_code = $3, requires_bank = $4, is_active = $5, "usage" = $6, logo = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10 AND updated_at = $11;
	`
	tag, err := r.db.Exec(ctx, query, m.Name, m.Type, m.IconCode, m.RequiresBank, m.IsActive, m.Usage, m.Logo, m.UpdatedAt, serverID, ownerID, prevUpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update payment method %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxPaymentMethodRepository) SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error) {
	query := `
		UPDATE payment_methods
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, now, serverID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete payment method %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxPaymentMethodRepository) ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE user_id = $1`
	args := []any{ownerID}
	if since != nil {
		query += ` AND updated_at > $2`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY updated_at ASC, id ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed payment methods: %w", err)
	}
	defer rows.Close()

	var result []domain.SyncRow
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		result = append(result, paymentMethodToSyncRow(m))
	}
	return result, rows.Err()
}

func (r *PgxPaymentMethodRepository) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payment_methods WHERE user_id = $1 AND deleted_at IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payment methods: %w", err)
	}
	return count, nil
}
