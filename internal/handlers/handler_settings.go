package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/dto"
	"github.com/SscSPs/dual_price_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles store settings requests.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

// newSettingsHandler creates a new settingsHandler.
func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{
		settingsService: ss,
	}
}

// registerSettingsRoutes registers routes related to store settings.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/display", h.updateDisplay)
		settings.PUT("/currency", h.setStoreCurrency)
	}
}

// getSettings godoc
// @Summary Get store settings
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} map[string]string "Failed to read settings"
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateDisplay godoc
// @Summary Update display settings
// @Description Applies a partial update. Omitted fields keep their stored value.
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateDisplaySettingsRequest true "Display settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to update settings"
// @Security BearerAuth
// @Router /settings/display [put]
func (h *settingsHandler) updateDisplay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateDisplaySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDisplay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settings, err := h.settingsService.UpdateDisplay(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update display settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// setStoreCurrency godoc
// @Summary Set the store currency
// @Tags settings
// @Accept  json
// @Param   currency body dto.SetStoreCurrencyRequest true "Store currency"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to set store currency"
// @Security BearerAuth
// @Router /settings/currency [put]
func (h *settingsHandler) setStoreCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetStoreCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetStoreCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	code, err := domain.ParseCurrencyCode(req.Currency)
	if err != nil {
		logger.Warn("Unsupported store currency", slog.String("currency", req.Currency))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsService.SetStoreCurrency(c.Request.Context(), code); err != nil {
		respondServiceError(c, logger, err, "Failed to set store currency")
		return
	}

	c.Status(http.StatusNoContent)
}
