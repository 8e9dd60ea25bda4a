package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/gin-gonic/gin"
)

const auditModuleFiscalYears = "fiscal_years"

type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
	auditService      portssvc.AuditSvcFacade
}

func newFiscalYearHandler(fs portssvc.FiscalYearSvcFacade, audit portssvc.AuditSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{fiscalYearService: fs, auditService: audit}
}

// RegisterFiscalYearRoutes registers routes related to fiscal years.
func RegisterFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newFiscalYearHandler(fiscalYearService, auditService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/for-date", h.getFiscalYearForDate)
		years.GET("/:id", h.getFiscalYear)
		years.POST("/:id/activate", h.activateFiscalYear)
		years.POST("/:id/lock", h.lockFiscalYear)
		years.DELETE("/:id", h.deleteFiscalYear)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Description Creates a fiscal year that does not overlap an existing one. The first fiscal year becomes active.
// @Tags fiscal-years
// @Accept json
// @Produce json
// @Param fiscalYear body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 422 {object} dto.ErrorResponse "Overlaps an existing fiscal year"
// @Failure 500 {object} dto.ErrorResponse "Failed to create fiscal year"
// @Security BearerAuth
// @Router /fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create fiscal year")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditCreate,
		Module:     auditModuleFiscalYears,
		ResourceID: strconv.FormatInt(fy.FiscalYearID, 10),
		After:      fy,
	})
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal-years
// @Produce json
// @Success 200 {array} dto.FiscalYearResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list fiscal years"
// @Security BearerAuth
// @Router /fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	years, err := h.fiscalYearService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondError(c, err, "list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFiscalYearResponse(years))
}

// getFiscalYearForDate godoc
// @Summary Find the fiscal year containing a date
// @Tags fiscal-years
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 404 {object} dto.ErrorResponse "No fiscal year contains the date"
// @Security BearerAuth
// @Router /fiscal-years/for-date [get]
func (h *fiscalYearHandler) getFiscalYearForDate(c *gin.Context) {
	date, err := dto.ParseDate("date", c.Query("date"))
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	fy, err := h.fiscalYearService.FindFiscalYearForDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err, "find fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// getFiscalYear godoc
// @Summary Get a fiscal year
// @Tags fiscal-years
// @Produce json
// @Param id path int true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id} [get]
func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.GetFiscalYear(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// activateFiscalYear godoc
// @Summary Activate a fiscal year
// @Tags fiscal-years
// @Produce json
// @Param id path int true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Failure 422 {object} dto.ErrorResponse "Fiscal year is locked"
// @Security BearerAuth
// @Router /fiscal-years/{id}/activate [post]
func (h *fiscalYearHandler) activateFiscalYear(c *gin.Context) {
	h.transition(c, domain.AuditActivate, "activate fiscal year", h.fiscalYearService.ActivateFiscalYear)
}

// lockFiscalYear godoc
// @Summary Lock a fiscal year
// @Description Closes a fiscal year for posting. Locking cannot be undone.
// @Tags fiscal-years
// @Produce json
// @Param id path int true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Security BearerAuth
// @Router /fiscal-years/{id}/lock [post]
func (h *fiscalYearHandler) lockFiscalYear(c *gin.Context) {
	h.transition(c, domain.AuditLock, "lock fiscal year", h.fiscalYearService.LockFiscalYear)
}

type fiscalYearTransition func(ctx context.Context, fiscalYearID int64, userID string) (*domain.FiscalYear, error)

// transition runs an activate or lock call and audits the state before and after it.
func (h *fiscalYearHandler) transition(c *gin.Context, action domain.AuditAction, desc string, apply fiscalYearTransition) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	before, err := h.fiscalYearService.GetFiscalYear(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, desc)
		return
	}

	fy, err := apply(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err, desc)
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     action,
		Module:     auditModuleFiscalYears,
		ResourceID: strconv.FormatInt(id, 10),
		Before:     before,
		After:      fy,
	})
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// deleteFiscalYear godoc
// @Summary Delete a fiscal year
// @Description Deletes a fiscal year that is neither active nor locked
// @Tags fiscal-years
// @Param id path int true "Fiscal year ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Fiscal year not found"
// @Failure 422 {object} dto.ErrorResponse "Fiscal year is active or locked"
// @Security BearerAuth
// @Router /fiscal-years/{id} [delete]
func (h *fiscalYearHandler) deleteFiscalYear(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.fiscalYearService.DeleteFiscalYear(c.Request.Context(), id, userID); err != nil {
		respondError(c, err, "delete fiscal year")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditDelete,
		Module:     auditModuleFiscalYears,
		ResourceID: strconv.FormatInt(id, 10),
	})
	c.Status(http.StatusNoContent)
}
