package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/psoares/finsync/internal/codec"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
	portssvc "github.com/psoares/finsync/internal/core/ports/services"
	"github.com/psoares/finsync/internal/dto"
	"github.com/psoares/finsync/internal/middleware"
)

// defaultAccountTypes are the starter categories a fresh account gets, so the
// first sync from a new device has something to hang subcategories off.
var defaultAccountTypes = []codec.Record{
	{"name": "Cartões de Crédito", "logo": "💳"},
	{"name": "Consumo", "logo": "🛒"},
	{"name": "Saúde", "logo": "🏥"},
	{"name": "Educação", "logo": "📚"},
	{"name": "Moradia", "logo": "🏠"},
	{"name": "Transporte", "logo": "🚗"},
}

// defaultPaymentMethods mirror the payment methods the mobile client ships
// with. icon_code is a Material Icons codepoint.
var defaultPaymentMethods = []codec.Record{
	{"name": "Cartão de Crédito", "type": "credit_card", "icon_code": 0xe19f, "requires_bank": 0, "usage": 0, "is_active": 1},
	{"name": "Crédito em conta", "type": "credit", "icon_code": 0xe1f5, "requires_bank": 1, "usage": 1, "is_active": 1},
	{"name": "Dinheiro", "type": "cash", "icon_code": 0xe19e, "requires_bank": 0, "usage": 2, "is_active": 1},
	{"name": "Débito C/C", "type": "debit", "icon_code": 0xe19f, "requires_bank": 1, "usage": 0, "is_active": 1},
	{"name": "Internet Banking", "type": "transfer", "icon_code": 0xe157, "requires_bank": 1, "usage": 2, "is_active": 1},
	{"name": "PIX", "type": "pix", "icon_code": 0xef6e, "requires_bank": 1, "usage": 2, "is_active": 1},
}

// userDataService covers whole-account operations: wiping everything a user
// owns and seeding the starter data for a fresh account.
type userDataService struct {
	repos portsrepo.RepositoryProvider
	now   func() time.Time
}

// NewUserDataService creates the user data service.
func NewUserDataService(repos portsrepo.RepositoryProvider) portssvc.UserDataSvcFacade {
	return &userDataService{repos: repos, now: time.Now}
}

var _ portssvc.UserDataSvcFacade = (*userDataService)(nil)

// WipeData hard-deletes every row the owner has, in one transaction, and
// reports per-table counts. Unlike sync deletions this is a real removal:
// the user asked for their data to be gone, not for a synchronizable
// tombstone.
func (s *userDataService) WipeData(ctx context.Context, ownerID int64) (*dto.WipeDataResponse, error) {
	counts, err := s.repos.UserData.PurgeOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("purge owner data: %w", err)
	}

	deleted := make(map[string]int64, len(counts))
	var total int64
	for table, n := range counts {
		deleted[table.String()] = n
		total += n
	}
	middleware.GetLoggerFromCtx(ctx).Info("User data wiped", slog.Int64("rows", total))

	return &dto.WipeDataResponse{Success: true, Deleted: deleted}, nil
}

// SeedDefaults creates the default account types and payment methods. Each
// table is seeded only while it has no live rows, so calling this again (or
// from a second device racing the first) does not pile up duplicates.
func (s *userDataService) SeedDefaults(ctx context.Context, ownerID int64) (*dto.SeedDefaultsResponse, error) {
	resp := &dto.SeedDefaultsResponse{}
	now := s.now()

	typeCount, err := s.repos.AccountTypes.CountActive(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count account types: %w", err)
	}
	if typeCount == 0 {
		for _, rec := range defaultAccountTypes {
			if _, err := s.repos.AccountTypes.Create(ctx, ownerID, rec, now); err != nil {
				return nil, fmt.Errorf("seed account type: %w", err)
			}
			resp.AccountTypes++
		}
	}

	methodCount, err := s.repos.PaymentMethods.CountActive(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count payment methods: %w", err)
	}
	if methodCount == 0 {
		for _, rec := range defaultPaymentMethods {
			if _, err := s.repos.PaymentMethods.Create(ctx, ownerID, rec, now); err != nil {
				return nil, fmt.Errorf("seed payment method: %w", err)
			}
			resp.PaymentMethods++
		}
	}

	middleware.GetLoggerFromCtx(ctx).Info("Defaults seeded",
		slog.Int("account_types", resp.AccountTypes),
		slog.Int("payment_methods", resp.PaymentMethods),
	)
	return resp, nil
}
