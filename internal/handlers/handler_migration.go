package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/dto"
	"github.com/SscSPs/dual_price_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// migrationHandler handles HTTP requests driving the BGN to EUR catalog migration.
type migrationHandler struct {
	migrationService portssvc.MigrationSvcFacade
}

// newMigrationHandler creates a new migrationHandler.
func newMigrationHandler(ms portssvc.MigrationSvcFacade) *migrationHandler {
	return &migrationHandler{
		migrationService: ms,
	}
}

// registerMigrationRoutes registers routes related to the catalog migration.
func registerMigrationRoutes(rg *gin.RouterGroup, migrationService portssvc.MigrationSvcFacade) {
	h := newMigrationHandler(migrationService)

	migration := rg.Group("/migration")
	{
		migration.POST("/start", h.start)
		migration.POST("/batch", h.processBatch)
		migration.POST("/resume", h.resume)
		migration.GET("/status", h.status)
		migration.POST("/finalize", h.finalize)
		migration.POST("/reset", h.reset)
	}
}

// start godoc
// @Summary Start the catalog migration
// @Description Counts the products to convert and records a fresh migration. The store currency must be BGN.
// @Tags migration
// @Produce  json
// @Success 200 {object} dto.StartMigrationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Store currency is not BGN"
// @Failure 500 {object} map[string]string "Failed to start migration"
// @Security BearerAuth
// @Router /migration/start [post]
func (h *migrationHandler) start(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to start migration")

	count, err := h.migrationService.Start(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to start migration")
		return
	}

	c.JSON(http.StatusOK, dto.StartMigrationResponse{Count: count})
}

// processBatch godoc
// @Summary Convert one batch of products
// @Description Converts the next batch of products starting at offset. Per-product failures are returned as warnings.
// @Tags migration
// @Accept  json
// @Produce  json
// @Param   batch body dto.ProcessBatchRequest true "Batch offset"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "No migration in progress"
// @Failure 500 {object} map[string]string "Failed to process batch"
// @Security BearerAuth
// @Router /migration/batch [post]
func (h *migrationHandler) processBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProcessBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int("offset", *req.Offset))
	result, err := h.migrationService.ProcessBatch(c.Request.Context(), *req.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to process migration batch")
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(result))
}

// resume godoc
// @Summary Resume the catalog migration
// @Description Processes one batch starting at the persisted offset.
// @Tags migration
// @Produce  json
// @Success 200 {object} dto.BatchResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "No migration in progress"
// @Failure 500 {object} map[string]string "Failed to resume migration"
// @Security BearerAuth
// @Router /migration/resume [post]
func (h *migrationHandler) resume(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.migrationService.Resume(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resume migration")
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(result))
}

// status godoc
// @Summary Get migration progress
// @Tags migration
// @Produce  json
// @Success 200 {object} dto.MigrationStatusResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to read migration status"
// @Security BearerAuth
// @Router /migration/status [get]
func (h *migrationHandler) status(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.migrationService.Status(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read migration status")
		return
	}

	c.JSON(http.StatusOK, dto.ToMigrationStatusResponse(state))
}

// finalize godoc
// @Summary Finalize the catalog migration
// @Description Switches the store currency to EUR and clears the migration state.
// @Tags migration
// @Success 204 "Finalized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Migration incomplete (strict mode)"
// @Failure 500 {object} map[string]string "Failed to finalize migration"
// @Security BearerAuth
// @Router /migration/finalize [post]
func (h *migrationHandler) finalize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to finalize migration")

	if err := h.migrationService.Finalize(c.Request.Context()); err != nil {
		respondServiceError(c, logger, err, "Failed to finalize migration")
		return
	}

	c.Status(http.StatusNoContent)
}

// reset godoc
// @Summary Reset the catalog migration
// @Description Clears the migration state. Converted prices and the store currency are left untouched.
// @Tags migration
// @Success 204 "Reset"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to reset migration"
// @Security BearerAuth
// @Router /migration/reset [post]
func (h *migrationHandler) reset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to reset migration")

	if err := h.migrationService.Reset(c.Request.Context()); err != nil {
		respondServiceError(c, logger, err, "Failed to reset migration")
		return
	}

	c.Status(http.StatusNoContent)
}
