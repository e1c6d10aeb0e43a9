package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/psoares/finsync/internal/apperrors"
	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
	"github.com/psoares/finsync/internal/models"
)

// PgxAccountRepository is the owner-scoped store for accounts: bills,
// receivables, credit cards and card-linked expenses all live in this table.
type PgxAccountRepository struct {
	db *pgxpool.Pool
}

// NewPgxAccountRepository creates the account repository.
func NewPgxAccountRepository(db *pgxpool.Pool) portsrepo.SyncRepository {
	return &PgxAccountRepository{db: db}
}

var _ portsrepo.SyncRepository = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) Table() domain.Table {
	return domain.TableAccounts
}

const accountColumns = `id, user_id, type_id, category_id, description, value, estimated_value,
	due_day, month, year, is_recurrent, pay_in_advance, recurrence_id,
	installment_index, installment_total, purchase_uuid, best_buy_day,
	card_brand, card_bank, card_limit, card_color, card_id,
	logo, observation, establishment, purchase_date, creation_date,
	created_at, updated_at, deleted_at`

// nullDecimal adapts an optional decimal for encoding.
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// decimalPtr adapts a scanned nullable decimal back to the model shape.
func decimalPtr(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var estimatedValue, cardLimit decimal.NullDecimal
	err := row.Scan(
		&m.ID, &m.UserID, &m.TypeID, &m.CategoryID, &m.Description, &m.Value, &estimatedValue,
		&m.DueDay, &m.Month, &m.Year, &m.IsRecurrent, &m.PayInAdvance, &m.RecurrenceID,
		&m.InstallmentIndex, &m.InstallmentTotal, &m.PurchaseUUID, &m.BestBuyDay,
		&m.CardBrand, &m.CardBank, &cardLimit, &m.CardColor, &m.CardID,
		&m.Logo, &m.Observation, &m.Establishment, &m.PurchaseDate, &m.CreationDate,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	m.EstimatedValue = decimalPtr(estimatedValue)
	m.CardLimit = decimalPtr(cardLimit)
	return m, err
}

func accountToSyncRow(m models.Account) domain.SyncRow {
	return domain.SyncRow{
		ID:        m.ID,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
		Data:      codec.AccountToClient(m),
	}
}

func (r *PgxAccountRepository) Create(ctx context.Context, ownerID int64, rec codec.Record, now time.Time) (int64, error) {
	m := models.Account{UserID: ownerID}
	codec.ApplyAccount(rec, &m)
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO accounts (user_id, type_id, category_id, description, value, estimated_value,
			due_day, month, year, is_recurrent, pay_in_advance, recurrence_id,
			installment_index, installment_total, purchase_uuid, best_buy_day,
			card_brand, card_bank, card_limit, card_color, card_id,
			logo, observation, establishment, purchase_date, creation_date,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		m.UserID, m.TypeID, m.CategoryID, m.Description, m.Value, nullDecimal(m.EstimatedValue),
		m.DueDay, m.Month, m.Year, m.IsRecurrent, m.PayInAdvance, m.RecurrenceID,
		m.InstallmentIndex, m.InstallmentTotal, m.PurchaseUUID, m.BestBuyDay,
		m.CardBrand, m.CardBank, nullDecimal(m.CardLimit), m.CardColor, m.CardID,
		m.Logo, m.Observation, m.Establishment, m.PurchaseDate, m.CreationDate,
		m.CreatedAt, m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}
	return id, nil
}

func (r *PgxAccountRepository) find(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	m, err := scanAccount(r.db.QueryRow(ctx, query, serverID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, apperrors.ErrNotFound
		}
		return models.Account{}, fmt.Errorf("failed to find account %d: %w", serverID, err)
	}
	return m, nil
}

func (r *PgxAccountRepository) FindByID(ctx context.Context, ownerID, serverID int64, includeDeleted bool) (*domain.SyncRow, error) {
	m, err := r.find(ctx, ownerID, serverID, includeDeleted)
	if err != nil {
		return nil, err
	}
	row := accountToSyncRow(m)
	return &row, nil
}

func (r *PgxAccountRepository) Update(ctx context.Context, ownerID, serverID int64, rec codec.Record, prevUpdatedAt, now time.Time) (bool, error) {
	m, err := r.find(ctx, ownerID, serverID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	codec.ApplyAccount(rec, &m)
	m.UpdatedAt = now

	query := `
		UPDATE accounts
		SET type_id = $1, category_id = $2, description = $3, value = $4, estimated_value = $5,
			due_day = $6, month = $7, year = $8, is_recurrent = $9, pay_in_advance = $10,
			recurrence_id = $11, installment_index = $12, installment_total = $13,
			purchase_uuid = $14, best_buy_day = $15, card_brand = $16, card_bank = $17,
			card_limit = $18, card_color = $19, card_id = $20, logo = $21, observation = $22,
			establishment = $23, purchase_date = $24, creation_date = $25, updated_at = $26
		WHERE id = $27 AND user_id = $28 AND updated_at = $29;
	`
	tag, err := r.db.Exec(ctx, query,
		m.TypeID, m.CategoryID, m.Description, m.Value, nullDecimal(m.EstimatedValue),
		m.DueDay, m.Month, m.Year, m.IsRecurrent, m.PayInAdvance,
		m.RecurrenceID, m.InstallmentIndex, m.InstallmentTotal,
		m.PurchaseUUID, m.BestBuyDay, m.CardBrand, m.CardBank,
		nullDecimal(m.CardLimit), m.CardColor, m.CardID, m.Logo, m.Observation,
		m.Establishment, m.PurchaseDate, m.CreationDate, m.UpdatedAt,
		serverID, ownerID, prevUpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update account %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxAccountRepository) SoftDelete(ctx context.Context, ownerID, serverID int64, now time.Time) (bool, error) {
	query := `
		UPDATE accounts
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, now, serverID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete account %d: %w", serverID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxAccountRepository) ChangedSince(ctx context.Context, ownerID int64, since *time.Time, limit int) ([]domain.SyncRow, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	args := []any{ownerID}
	if since != nil {
		query += ` AND updated_at > $2`
		args = append(args, *since)
	}
	query += fmt.Sprintf(` ORDER BY updated_at ASC, id ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query changed accounts: %w", err)
	}
	defer rows.Close()

	var result []domain.SyncRow
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		result = append(result, accountToSyncRow(m))
	}
	return result, rows.Err()
}

func (r *PgxAccountRepository) CountActive(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE user_id = $1 AND deleted_at IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
