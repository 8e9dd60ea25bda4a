package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/SscSPs/textile_erp/internal/middleware"
	"github.com/gin-gonic/gin"
)

const auditModuleJournal = "journal"

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	auditService   portssvc.AuditSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade, audit portssvc.AuditSvcFacade) *journalHandler {
	return &journalHandler{journalService: js, auditService: audit}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newJournalHandler(journalService, auditService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Post a journal entry
// @Description Validates, numbers and posts a balanced journal entry
// @Tags journal
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Referenced account not found"
// @Failure 422 {object} dto.ErrorResponse "Entry violates an accounting rule"
// @Failure 500 {object} dto.ErrorResponse "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger.Info("Received request to post journal entry",
		slog.String("voucher_type", string(req.VoucherType)),
		slog.Int("lines", len(req.Lines)))

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "post journal entry")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditPost,
		Module:     auditModuleJournal,
		ResourceID: strconv.FormatInt(entry.EntryID, 10),
		After:      entry,
	})
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists journal entries most recent first with cursor pagination
// @Tags journal
// @Produce json
// @Param voucherType query string false "Voucher type"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Param includeLines query bool false "Include lines"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	resp, err := h.journalService.GetEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entryID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, err, "retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts a new entry with debits and credits swapped that cancels the original
// @Tags journal
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body dto.ReverseJournalEntryRequest false "Optional date and narration"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 422 {object} dto.ErrorResponse "Entry cannot be reversed"
// @Failure 500 {object} dto.ErrorResponse "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	entryID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.ReverseJournalEntryRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondError(c, err, "reverse journal entry")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditReverse,
		Module:     auditModuleJournal,
		ResourceID: strconv.FormatInt(entryID, 10),
		After:      reversal,
	})
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
