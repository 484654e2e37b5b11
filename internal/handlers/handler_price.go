package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/dto"
	"github.com/SscSPs/dual_price_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxAnnotateBodyBytes bounds the public annotate request body.
const maxAnnotateBodyBytes = 256 << 10

// priceHandler handles storefront dual price requests.
type priceHandler struct {
	priceService portssvc.PriceDisplaySvcFacade
}

// newPriceHandler creates a new priceHandler.
func newPriceHandler(ps portssvc.PriceDisplaySvcFacade) *priceHandler {
	return &priceHandler{
		priceService: ps,
	}
}

// registerPriceRoutes registers routes related to dual price display.
func registerPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceDisplaySvcFacade) {
	h := newPriceHandler(priceService)

	prices := rg.Group("/prices")
	{
		prices.GET("/display", h.displayStatus)
		prices.POST("/annotate", h.annotate)
		prices.POST("/legacy-order", h.legacyOrder)
	}

	rg.GET("/products/:productID/price", h.productPrice)
}

// displayStatus godoc
// @Summary Check whether dual prices are shown
// @Tags prices
// @Produce  json
// @Success 200 {object} dto.DisplayStatusResponse
// @Failure 500 {object} map[string]string "Failed to read settings"
// @Router /prices/display [get]
func (h *priceHandler) displayStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	display, err := h.priceService.ShouldDisplay(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read display settings")
		return
	}

	c.JSON(http.StatusOK, dto.DisplayStatusResponse{Display: display})
}

// annotate godoc
// @Summary Annotate a price fragment
// @Description Appends the secondary currency amount to a rendered price fragment.
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   fragment body dto.AnnotateRequest true "Fragment to annotate"
// @Success 200 {object} dto.AnnotateResponse
// @Failure 400 {object} map[string]string "Invalid input or fragment too large"
// @Failure 500 {object} map[string]string "Failed to annotate fragment"
// @Router /prices/annotate [post]
func (h *priceHandler) annotate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAnnotateBodyBytes)
	var req dto.AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Annotate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	out, changed, err := h.priceService.Annotate(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("context", string(req.Context))), err, "Failed to annotate fragment")
		return
	}

	c.JSON(http.StatusOK, dto.AnnotateResponse{HTML: out, Changed: changed})
}

// legacyOrder godoc
// @Summary Relabel a legacy order amount
// @Description Relabels an amount of an order placed in BGN once the store runs in EUR. The amount is not converted.
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   order body dto.LegacyOrderRequest true "Order amount"
// @Success 200 {object} dto.LegacyOrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to relabel amount"
// @Router /prices/legacy-order [post]
func (h *priceHandler) legacyOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LegacyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for LegacyOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// orders in other currencies are never relabelled
	orderCurrency, err := domain.ParseCurrencyCode(req.OrderCurrency)
	if err != nil {
		c.JSON(http.StatusOK, dto.LegacyOrderResponse{})
		return
	}

	out, relabelled, err := h.priceService.LegacyOrderAmount(c.Request.Context(), orderCurrency, req.Amount, req.Discount)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to relabel order amount")
		return
	}

	c.JSON(http.StatusOK, dto.LegacyOrderResponse{HTML: out, Relabelled: relabelled})
}

// productPrice godoc
// @Summary Get a product price in both currencies
// @Tags prices
// @Produce  json
// @Param   productID path int true "Product ID"
// @Success 200 {object} dto.ProductPriceResponse
// @Failure 400 {object} map[string]string "Invalid product ID"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Unsupported store currency or dual display inactive"
// @Failure 500 {object} map[string]string "Failed to get product price"
// @Router /products/{productID}/price [get]
func (h *priceHandler) productPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || productID <= 0 {
		logger.Warn("Invalid product ID in path", slog.String("product_id", c.Param("productID")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	price, err := h.priceService.ProductPrice(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, logger.With(slog.Int64("product_id", productID)), err, "Failed to get product price")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductPriceResponse(price))
}
