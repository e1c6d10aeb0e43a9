package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
	"github.com/psoares/finsync/internal/middleware"
)

// OwnershipValidator is the tenant-isolation gate for client-supplied foreign
// keys. The client is untrusted: nothing stops a device from pushing a record
// whose typeId (or any other FK) is a row id belonging to another user.
// Every push item passes through here before anything is written.
type OwnershipValidator struct {
	ownership portsrepo.OwnershipReader
}

// NewOwnershipValidator creates an OwnershipValidator backed by the given
// ownership reader.
func NewOwnershipValidator(ownership portsrepo.OwnershipReader) *OwnershipValidator {
	return &OwnershipValidator{ownership: ownership}
}

// ValidationResult accumulates every FK problem found in one record, so a
// rejected item carries a complete diagnostic in a single round trip.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks each foreign key the table carries against rec. A null or
// absent FK is valid; a present FK must reference a live row owned by
// ownerID. Errors are accumulated, never short-circuited. Only infrastructure
// failures return a non-nil error.
func (v *OwnershipValidator) Validate(ctx context.Context, table domain.Table, rec codec.Record, ownerID int64) (ValidationResult, error) {
	result := ValidationResult{Valid: true}

	for _, fk := range domain.ForeignKeys(table) {
		id, ok := rec.Int64(fk.Keys...)
		if !ok || id == 0 {
			continue
		}

		refOwner, found, err := v.ownership.FindOwner(ctx, fk.Ref, id)
		if err != nil {
			return ValidationResult{}, fmt.Errorf("ownership lookup for %s=%d: %w", fk.Label, id, err)
		}
		if !found {
			result.Errors = append(result.Errors, fmt.Sprintf("%s=%d not found", fk.Label, id))
			continue
		}
		if refOwner != ownerID {
			// This is the exact shape of a cross-tenant probe, worth an
			// audit trail even though the caller only sees a rejection.
			middleware.GetLoggerFromCtx(ctx).Warn("[FK SECURITY] cross-tenant foreign key rejected",
				slog.String("table", table.String()),
				slog.String("field", fk.Label),
				slog.Int64("referenced_id", id),
				slog.Int64("referenced_owner", refOwner),
				slog.Int64("requesting_owner", ownerID),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("%s=%d does not belong to user", fk.Label, id))
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}
