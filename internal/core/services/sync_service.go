package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/psoares/finsync/internal/apperrors"
	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/core/domain"
	portsrepo "github.com/psoares/finsync/internal/core/ports/repositories"
	portssvc "github.com/psoares/finsync/internal/core/ports/services"
	"github.com/psoares/finsync/internal/dto"
	"github.com/psoares/finsync/internal/middleware"
)

// DefaultSyncPageSize caps how many rows a single pull returns. A client that
// receives a full page re-issues the pull with the new checkpoint.
const DefaultSyncPageSize = 1000

// syncService reconciles client-pushed changes against server state and emits
// server changes since a checkpoint, one table per call. All per-item
// outcomes are reported in-band; only call-level problems become errors.
type syncService struct {
	repos     portsrepo.RepositoryProvider
	validator *OwnershipValidator
	pageSize  int
	now       func() time.Time
}

// SyncServiceOption customizes a syncService.
type SyncServiceOption func(*syncService)

// WithSyncPageSize overrides the pull page cap.
func WithSyncPageSize(size int) SyncServiceOption {
	return func(s *syncService) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithClock overrides the server clock, for tests.
func WithClock(now func() time.Time) SyncServiceOption {
	return func(s *syncService) {
		s.now = now
	}
}

// NewSyncService creates the sync engine.
func NewSyncService(repos portsrepo.RepositoryProvider, validator *OwnershipValidator, opts ...SyncServiceOption) portssvc.SyncSvcFacade {
	s := &syncService{
		repos:     repos,
		validator: validator,
		pageSize:  DefaultSyncPageSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// Push applies one table's batch of client changes: creations first, then
// updates, then deletions, each group in client order. Items are independent;
// a rejected item never aborts its siblings.
func (s *syncService) Push(ctx context.Context, ownerID int64, req dto.SyncPushRequest) (*dto.SyncPushResponse, error) {
	table, ok := domain.ParseTable(req.Table)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedTable, req.Table)
	}
	repo := s.repos.ByTable(table)
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("table", table.String()))

	serverTime := s.now()
	resp := &dto.SyncPushResponse{
		Created:         []dto.SyncIDMapping{},
		Updated:         []dto.SyncIDMapping{},
		Conflicts:       []dto.SyncConflict{},
		Rejected:        []dto.SyncRejection{},
		ServerTimestamp: codec.FormatTime(serverTime),
	}

	for _, rec := range req.Creates {
		if err := s.pushCreate(ctx, logger, repo, ownerID, table, rec, serverTime, resp); err != nil {
			return nil, err
		}
	}
	for _, rec := range req.Updates {
		if err := s.pushUpdate(ctx, logger, repo, ownerID, table, rec, serverTime, resp); err != nil {
			return nil, err
		}
	}
	for _, serverID := range req.Deletes {
		applied, err := repo.SoftDelete(ctx, ownerID, serverID, serverTime)
		if err != nil {
			return nil, fmt.Errorf("soft delete %s id=%d: %w", table, serverID, err)
		}
		if !applied {
			// Row already gone, likely deleted by another device. Benign.
			logger.Debug("Delete target not found, skipping", slog.Int64("server_id", serverID))
		}
	}

	logger.Info("Sync push completed",
		slog.Int("created", len(resp.Created)),
		slog.Int("updated", len(resp.Updated)),
		slog.Int("conflicts", len(resp.Conflicts)),
		slog.Int("rejected", len(resp.Rejected)),
	)
	return resp, nil
}

func (s *syncService) pushCreate(ctx context.Context, logger *slog.Logger, repo portsrepo.SyncRepository, ownerID int64, table domain.Table, rec codec.Record, serverTime time.Time, resp *dto.SyncPushResponse) error {
	localID, _ := rec.Raw("localId", "local_id")

	check, err := s.validator.Validate(ctx, table, rec, ownerID)
	if err != nil {
		return err
	}
	if !check.Valid {
		resp.Rejected = append(resp.Rejected, dto.SyncRejection{
			LocalID: localID,
			Reason:  "FK validation failed",
			Errors:  check.Errors,
		})
		return nil
	}

	serverID, err := repo.Create(ctx, ownerID, rec, serverTime)
	if err != nil {
		return fmt.Errorf("create in %s: %w", table, err)
	}
	resp.Created = append(resp.Created, dto.SyncIDMapping{LocalID: localID, ServerID: serverID})
	return nil
}

func (s *syncService) pushUpdate(ctx context.Context, logger *slog.Logger, repo portsrepo.SyncRepository, ownerID int64, table domain.Table, rec codec.Record, serverTime time.Time, resp *dto.SyncPushResponse) error {
	localID, _ := rec.Raw("localId", "local_id")

	serverID, ok := rec.Int64("server_id", "serverId", "id")
	if !ok || serverID == 0 {
		// Malformed item, not a conflict. Siblings still get processed.
		logger.Warn("Update without server_id, skipping item")
		return nil
	}

	check, err := s.validator.Validate(ctx, table, rec, ownerID)
	if err != nil {
		return err
	}
	if !check.Valid {
		resp.Rejected = append(resp.Rejected, dto.SyncRejection{
			LocalID:  localID,
			ServerID: &serverID,
			Reason:   "FK validation failed",
			Errors:   check.Errors,
		})
		return nil
	}

	row, err := repo.FindByID(ctx, ownerID, serverID, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The row may have been hard-wiped by another session. Benign.
			logger.Info("Update target not found, skipping item", slog.Int64("server_id", serverID))
			return nil
		}
		return fmt.Errorf("find %s id=%d: %w", table, serverID, err)
	}

	clientKnown := s.clientUpdatedAt(logger, rec)
	if row.UpdatedAt.After(clientKnown) {
		// Server version is newer: server wins, client reconciles via pull.
		resp.Conflicts = append(resp.Conflicts, dto.SyncConflict{
			LocalID:    localID,
			ServerID:   serverID,
			ServerData: row.Data,
		})
		return nil
	}

	applied, err := repo.Update(ctx, ownerID, serverID, rec, row.UpdatedAt, serverTime)
	if err != nil {
		return fmt.Errorf("update %s id=%d: %w", table, serverID, err)
	}
	if !applied {
		// A concurrent call mutated the row between our read and the guarded
		// write. Re-read and surface it as a conflict with the winner's data.
		fresh, err := repo.FindByID(ctx, ownerID, serverID, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Info("Update target vanished mid-call, skipping item", slog.Int64("server_id", serverID))
				return nil
			}
			return fmt.Errorf("re-read %s id=%d: %w", table, serverID, err)
		}
		resp.Conflicts = append(resp.Conflicts, dto.SyncConflict{
			LocalID:    localID,
			ServerID:   serverID,
			ServerData: fresh.Data,
		})
		return nil
	}

	resp.Updated = append(resp.Updated, dto.SyncIDMapping{LocalID: localID, ServerID: serverID})
	return nil
}

// clientUpdatedAt parses the client's last-known updated_at. A missing or
// unparsable value is treated as the zero time, which always loses the
// conflict comparison in the client's favor, matching how updates without a
// known server version have always been applied.
func (s *syncService) clientUpdatedAt(logger *slog.Logger, rec codec.Record) time.Time {
	raw, ok := rec.String("updated_at", "updatedAt")
	if !ok || raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		logger.Warn("Unparsable updated_at on update item", slog.String("value", raw))
		return time.Time{}
	}
	return t
}

// Pull returns the owner's rows for one table with updated_at strictly after
// the checkpoint, oldest first, soft-deleted rows reduced to bare ids.
func (s *syncService) Pull(ctx context.Context, ownerID int64, tableName, since string) (*dto.SyncPullResponse, error) {
	table, ok := domain.ParseTable(tableName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedTable, tableName)
	}

	var checkpoint *time.Time
	if since != "" {
		t, err := time.Parse(time.RFC3339Nano, since)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid since timestamp (use ISO 8601): %q", apperrors.ErrValidation, since)
		}
		checkpoint = &t
	}

	repo := s.repos.ByTable(table)
	rows, err := repo.ChangedSince(ctx, ownerID, checkpoint, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("changed since for %s: %w", table, err)
	}

	resp := &dto.SyncPullResponse{
		Records:         []codec.Record{},
		Deleted:         []int64{},
		ServerTimestamp: codec.FormatTime(s.now()),
		OwnerID:         ownerID,
		HasMore:         len(rows) >= s.pageSize,
	}
	for _, row := range rows {
		if row.IsDeleted() {
			resp.Deleted = append(resp.Deleted, row.ID)
		} else {
			resp.Records = append(resp.Records, row.Data)
		}
	}

	middleware.GetLoggerFromCtx(ctx).Info("Sync pull completed",
		slog.String("table", table.String()),
		slog.Int("records", len(resp.Records)),
		slog.Int("deleted", len(resp.Deleted)),
		slog.Bool("has_more", resp.HasMore),
	)
	return resp, nil
}

// Status reports per-table live row counts plus the supported table set, so
// a client can decide what to pull first.
func (s *syncService) Status(ctx context.Context, ownerID int64) (*dto.SyncStatusResponse, error) {
	resp := &dto.SyncStatusResponse{
		Tables:          make(map[string]int64, len(domain.SupportedTables())),
		SupportedTables: []string{},
		ServerTime:      codec.FormatTime(s.now()),
	}
	for _, table := range domain.SupportedTables() {
		count, err := s.repos.ByTable(table).CountActive(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("count for %s: %w", table, err)
		}
		resp.Tables[table.String()] = count
		resp.SupportedTables = append(resp.SupportedTables, table.String())
	}
	return resp, nil
}
