package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/gin-gonic/gin"
)

const auditModuleCurrencies = "currencies"

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	auditService    portssvc.AuditSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, audit portssvc.AuditSvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
		auditService:    audit,
	}
}

// RegisterCurrencyRoutes registers routes related to currencies.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newCurrencyHandler(currencyService, auditService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:currencyCode", h.getCurrency)
		currencies.PUT("/:currencyCode/base", h.setBaseCurrency)
		currencies.PUT("/:currencyCode/rate", h.updateExchangeRate)
		currencies.DELETE("/:currencyCode", h.deleteCurrency)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds an ISO 4217 currency. The first currency becomes the base currency.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Currency already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create currency")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditCreate,
		Module:     auditModuleCurrencies,
		ResourceID: currency.CurrencyCode,
		After:      currency,
	})
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// getCurrency godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce  json
// @Param   currencyCode path string true "Currency Code (e.g., INR)"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get currency"
// @Security BearerAuth
// @Router /currencies/{currencyCode} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	code := strings.ToUpper(c.Param("currencyCode"))

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "get currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// setBaseCurrency godoc
// @Summary Make a currency the base currency
// @Tags currencies
// @Produce  json
// @Param   currencyCode path string true "Currency Code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to set base currency"
// @Security BearerAuth
// @Router /currencies/{currencyCode}/base [put]
func (h *currencyHandler) setBaseCurrency(c *gin.Context) {
	code := strings.ToUpper(c.Param("currencyCode"))
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.SetBaseCurrency(c.Request.Context(), code, userID)
	if err != nil {
		respondError(c, err, "set base currency")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditSetBase,
		Module:     auditModuleCurrencies,
		ResourceID: code,
		After:      currency,
	})
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// updateExchangeRate godoc
// @Summary Update the exchange rate of a currency
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currencyCode path string true "Currency Code"
// @Param   rate body dto.UpdateExchangeRateRequest true "New rate against the base currency"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid rate"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 422 {object} dto.ErrorResponse "Base currency rate cannot change"
// @Failure 500 {object} dto.ErrorResponse "Failed to update exchange rate"
// @Security BearerAuth
// @Router /currencies/{currencyCode}/rate [put]
func (h *currencyHandler) updateExchangeRate(c *gin.Context) {
	code := strings.ToUpper(c.Param("currencyCode"))
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	before, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "update exchange rate")
		return
	}

	currency, err := h.currencyService.UpdateExchangeRate(c.Request.Context(), code, req, userID)
	if err != nil {
		respondError(c, err, "update exchange rate")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditUpdate,
		Module:     auditModuleCurrencies,
		ResourceID: code,
		Before:     before,
		After:      currency,
	})
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// deleteCurrency godoc
// @Summary Delete a currency
// @Tags currencies
// @Param   currencyCode path string true "Currency Code"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Currency not found"
// @Failure 422 {object} dto.ErrorResponse "Base currency cannot be deleted"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete currency"
// @Security BearerAuth
// @Router /currencies/{currencyCode} [delete]
func (h *currencyHandler) deleteCurrency(c *gin.Context) {
	code := strings.ToUpper(c.Param("currencyCode"))
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.currencyService.DeleteCurrency(c.Request.Context(), code, userID); err != nil {
		respondError(c, err, "delete currency")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditDelete,
		Module:     auditModuleCurrencies,
		ResourceID: code,
	})
	c.Status(http.StatusNoContent)
}
