package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psoares/finsync/internal/apperrors"
	portssvc "github.com/psoares/finsync/internal/core/ports/services"
	"github.com/psoares/finsync/internal/dto"
	"github.com/psoares/finsync/internal/middleware"
)

// syncHandler handles HTTP requests for the sync protocol.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{
		syncService: ss,
	}
}

// registerSyncRoutes registers the sync endpoints.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade, extra ...gin.HandlerFunc) {
	h := newSyncHandler(syncService)

	sync := rg.Group("/sync", extra...)
	{
		sync.POST("/push", h.push)
		sync.GET("/pull", h.pull)
		sync.GET("/status", h.status)
	}
}

// push godoc
// @Summary Push client changes for one table
// @Description Applies a batch of creates, updates and deletes for a single sync table. Item-level failures are reported in the response lists, not as HTTP errors.
// @Tags sync
// @Accept  json
// @Produce  json
// @Param   batch body dto.SyncPushRequest true "Table batch"
// @Success 200 {object} dto.SyncPushResponse
// @Failure 400 {object} map[string]string "Invalid input or unsupported table"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to apply changes"
// @Security BearerAuth
// @Router /sync/push [post]
func (h *syncHandler) push(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SyncPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for sync push", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("table", req.Table), slog.Int64("owner_id", ownerID))
	logger.Info("Received sync push",
		slog.Int("creates", len(req.Creates)),
		slog.Int("updates", len(req.Updates)),
		slog.Int("deletes", len(req.Deletes)))

	resp, err := h.syncService.Push(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedTable) {
			logger.Warn("Push for unsupported table")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported table: " + req.Table})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error applying push", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to apply sync push", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply changes"})
		}
		return
	}

	logger.Info("Sync push applied",
		slog.Int("created", len(resp.Created)),
		slog.Int("updated", len(resp.Updated)),
		slog.Int("conflicts", len(resp.Conflicts)),
		slog.Int("rejected", len(resp.Rejected)))
	c.JSON(http.StatusOK, resp)
}

// pull godoc
// @Summary Pull server changes for one table
// @Description Returns the caller's rows changed since the given checkpoint, live records and deleted ids separately. Persist server_timestamp as the next checkpoint.
// @Tags sync
// @Produce  json
// @Param   table query string true "Sync table name"
// @Param   since query string false "ISO-8601 checkpoint of the last successful pull"
// @Success 200 {object} dto.SyncPullResponse
// @Failure 400 {object} map[string]string "Unsupported table or malformed checkpoint"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read changes"
// @Security BearerAuth
// @Router /sync/pull [get]
func (h *syncHandler) pull(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	table := c.Query("table")
	if table == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'table' is required"})
		return
	}
	since := c.Query("since")

	logger = logger.With(slog.String("table", table), slog.Int64("owner_id", ownerID))

	resp, err := h.syncService.Pull(c.Request.Context(), ownerID, table, since)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedTable) {
			logger.Warn("Pull for unsupported table")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported table: " + table})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Malformed pull checkpoint", slog.String("since", since))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to read sync changes", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read changes"})
		}
		return
	}

	logger.Info("Sync pull served",
		slog.Int("records", len(resp.Records)),
		slog.Int("deleted", len(resp.Deleted)),
		slog.Bool("has_more", resp.HasMore))
	c.JSON(http.StatusOK, resp)
}

// status godoc
// @Summary Report per-table sync status
// @Description Returns active row counts per sync table plus the supported table list.
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read status"
// @Security BearerAuth
// @Router /sync/status [get]
func (h *syncHandler) status(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.syncService.Status(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to read sync status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read status"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
