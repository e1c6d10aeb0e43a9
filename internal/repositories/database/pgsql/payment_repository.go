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

// PgxPaymentRepository is the owner-scoped store for payment events.
type PgxPaymentRepository struct {
	db *pgxpool.Pool
}

// NewPgxPaymentRepository creates the payment repository.
func NewPgxPaymentRepository(db *pgxpool.Pool) portsrepo.SyncRepository {
	return &PgxPaymentRepository{db: db}
}

var _ portsrepo.SyncRepository = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) Table() domain.Table {
	return domain.TablePayments
}

const paymentColumns = `id, user_id, account_id, payment_method_id, bank_account_id, credit_card_id,
	value, payment_date, observation, created_at, updated_at, deleted_at`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.ID, &m.UserID, &m.AccountID, &m.PaymentMethodID, &m.BankAccountID, &m.CreditCardID,
		&m.Value, &m.PaymentDate, &m.Observation, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	return m, err
}

func paymentToSyncRow(m models.Payment) domain.SyncRow {
	return domain.SyncRow{
		ID:        m.ID,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
		Data:      codec.PaymentToClient(m),
	}
}

func (r *PgxPaymentRepository) Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error) {
	m := models.Payment{UserID: ownerID}
	codec.ApplyPayment(rec, &m)
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO payments (user_id, account_id, payment_method_id, bank_account_id, credit_card_id,
			value, payment_date, observation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		m.UserID, m.AccountID, m.PaymentMethodID, m.BankAccountID, m.CreditCardID,
		m.Value, m.PaymentDate, m.Observation, m.CreatedAt, m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert payment: %w", err)
	}
	return id, nil
}

func (r *PgxPaymentRepository) find(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND user_id = $2`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	m, err := scanPayment(r.db.QueryRow(ctx, query, serverID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Payment{}, apperrors.ErrNotFound
		}
		return models.Payment{}, fmt.Errorf("failed to find payment %d: %w", serverID, err)
	}
	return m, nil
}

func (r *PgxPaymentRepository) FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error) {
	m, err := r.find(ctx, ownerID, serverID, includeDeleted)
	if err != nil {
		return nil, err
	}
	row := paymentToSyncRow(m)
	return &row, nil
}

func (r *PgxPaymentRepository) Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error) {
	m, err := r.find(ctx, ownerID, serverID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	codec.ApplyPayment(rec, &m)
	m.UpdatedAt = now

	query := `
		UPDATE payments
		SET account_id = $1, payment_method_id = $2, bank_account_id = $3, credit_card_id = $4,
			value = $5, payment_date = $6, observation = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10 AND updated_at = $11;
	`
	tag, err := r.db.Exec(ctx, query,
		m.AccountID, m.PaymentMethodID, m.BankAccountID, m.CreditCardID,
		m.Value, m.PaymentDate, m.Observation, m.UpdatedAt,
		serverID, ownerID, prevUpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update payment %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxPaymentRepository) SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error) {
	query := `
		UPDATE payments
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, now, serverID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete payment %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxPaymentRepository) ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1`
	args := []any{ownerID}
	if since != nil {
		query += ` AND updated_at > $2`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY updated_at ASC, id ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed payments: %w", err)
	}
	defer rows.Close()

	var result []domain.SyncRow
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		result = append(result, paymentToSyncRow(m))
	}
	return result, rows.Err()
}

func (r *PgxPaymentRepository) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE user_id = $1 AND deleted_at IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}
