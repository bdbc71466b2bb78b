package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/SscSPs/pfm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currencyRateHandler serves rate listing, refresh and one-off conversions.
type currencyRateHandler struct {
	rateService       portssvc.CurrencyRateSvcFacade
	conversionService portssvc.ConversionSvc
	defaultBase       string
}

func newCurrencyRateHandler(rs portssvc.CurrencyRateSvcFacade, cs portssvc.ConversionSvc, defaultBase string) *currencyRateHandler {
	return &currencyRateHandler{rateService: rs, conversionService: cs, defaultBase: defaultBase}
}

func registerCurrencyRateRoutes(rg *gin.RouterGroup, rateService portssvc.CurrencyRateSvcFacade, conversionService portssvc.ConversionSvc, defaultBase string) {
	h := newCurrencyRateHandler(rateService, conversionService, defaultBase)

	rates := rg.Group("/currency-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/convert", h.convert)
		rates.POST("/refresh", h.refreshRates)
	}
}

// listRates godoc
// @Summary List current rates
// @Description Lists the latest stored rates quoted against a base currency.
// @Tags currency-rates
// @Produce json
// @Param base query string false "Base currency" default(USD)
// @Success 200 {array} dto.CurrencyRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /currency-rates [get]
func (h *currencyRateHandler) listRates(c *gin.Context) {
	var params dto.ListRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	rates, err := h.rateService.ListCurrentRates(c.Request.Context(), params.Base)
	if err != nil {
		respondError(c, err, "Failed to list currency rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyRateResponse(rates))
}

// convert godoc
// @Summary Convert an amount
// @Description Converts using the current rate, or the rate of the given day when date is set.
// @Tags currency-rates
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Param date query string false "Historical date (YYYY-MM-DD)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /currency-rates/convert [get]
func (h *currencyRateHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		respondError(c, apperrors.NewFieldValidationError("Conversion", "amount", "Amount must be a number"), "Invalid conversion amount")
		return
	}

	var converted decimal.Decimal
	if params.Date != nil {
		converted, err = h.conversionService.ConvertHistorical(c.Request.Context(), amount, params.From, params.To, *params.Date)
	} else {
		converted, err = h.conversionService.ConvertCurrent(c.Request.Context(), amount, params.From, params.To)
	}
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToConvertResponse(amount, params.From, params.To, converted, params.Date))
}

// refreshRates godoc
// @Summary Refresh rates
// @Description Fetches the latest rates for a base currency from the provider and stores them.
// @Tags currency-rates
// @Accept json
// @Produce json
// @Param request body dto.RefreshRatesRequest false "Base currency to refresh"
// @Success 200 {array} dto.CurrencyRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /currency-rates/refresh [post]
func (h *currencyRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}
	base := req.Base
	if base == "" {
		base = h.defaultBase
	}

	if err := h.rateService.UpdateCurrencyRates(c.Request.Context(), base); err != nil {
		respondError(c, err, "Failed to refresh currency rates")
		return
	}
	logger.Info("Currency rates refreshed on request", slog.String("base", base))

	rates, err := h.rateService.ListCurrentRates(c.Request.Context(), base)
	if err != nil {
		respondError(c, err, "Failed to list currency rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyRateResponse(rates))
}
