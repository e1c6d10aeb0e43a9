package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/psoares/finsync/internal/core/ports/services"
	"github.com/psoares/finsync/internal/middleware"
)

// userHandler handles HTTP requests for whole-account data operations.
type userHandler struct {
	userDataService portssvc.UserDataSvcFacade
}

func newUserHandler(us portssvc.UserDataSvcFacade) *userHandler {
	return &userHandler{
		userDataService: us,
	}
}

// registerUserRoutes registers the user data endpoints.
func registerUserRoutes(rg *gin.RouterGroup, userDataService portssvc.UserDataSvcFacade) {
	h := newUserHandler(userDataService)

	user := rg.Group("/user")
	{
		user.DELETE("/data", h.wipeData)
		user.POST("/defaults", h.seedDefaults)
	}
}

// wipeData godoc
// @Summary Delete all of the caller's data
// @Description Permanently removes every row the caller owns across all sync tables.
// @Tags user
// @Produce  json
// @Success 200 {object} dto.WipeDataResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to delete data"
// @Security BearerAuth
// @Router /user/data [delete]
func (h *userHandler) wipeData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("owner_id", ownerID))
	logger.Info("Received request to wipe user data")

	resp, err := h.userDataService.WipeData(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to wipe user data", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete data"})
		return
	}

	logger.Info("User data wiped")
	c.JSON(http.StatusOK, resp)
}

// seedDefaults godoc
// @Summary Seed default reference data
// @Description Creates the default account types and payment methods for the caller. Tables that already hold rows are left untouched.
// @Tags user
// @Produce  json
// @Success 200 {object} dto.SeedDefaultsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to seed defaults"
// @Security BearerAuth
// @Router /user/defaults [post]
func (h *userHandler) seedDefaults(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("owner_id", ownerID))

	resp, err := h.userDataService.SeedDefaults(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to seed defaults", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed defaults"})
		return
	}

	logger.Info("Defaults seeded",
		slog.Int("account_types", resp.AccountTypes),
		slog.Int("payment_methods", resp.PaymentMethods))
	c.JSON(http.StatusOK, resp)
}
