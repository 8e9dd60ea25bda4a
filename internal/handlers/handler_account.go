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

const auditModuleAccounts = "accounts"

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	auditService   portssvc.AuditSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, audit portssvc.AuditSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		auditService:   audit,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newAccountHandler(accountService, auditService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.getAccountTree)
		accounts.GET("/balances", h.getAccountBalances)
		accounts.POST("/setup-default", h.setupDefaultCOA)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/ledger", h.getAccountLedger)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a grouping or posting account in the chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Account code already used in the segment"
// @Failure 422 {object} dto.ErrorResponse "Invalid parent account"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("segment", req.Segment))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create account")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditCreate,
		Module:     auditModuleAccounts,
		ResourceID: strconv.FormatInt(account.AccountID, 10),
		After:      account,
	})

	logger.Info("Account created successfully", slog.Int64("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts ordered by code, optionally filtered by segment, type and posting flag
// @Tags accounts
// @Produce  json
// @Param   segment query string false "Segment"
// @Param   accountType query string false "Account type"
// @Param   postingOnly query bool false "Only posting accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccountTree godoc
// @Summary Get the account hierarchy
// @Description Returns the chart of accounts as a forest of root accounts and their children
// @Tags accounts
// @Produce  json
// @Param   segment query string false "Segment"
// @Success 200 {array} dto.AccountNodeResponse
// @Failure 422 {object} dto.ErrorResponse "Stored hierarchy contains a cycle"
// @Failure 500 {object} dto.ErrorResponse "Failed to build account hierarchy"
// @Security BearerAuth
// @Router /accounts/tree [get]
func (h *accountHandler) getAccountTree(c *gin.Context) {
	var params dto.AccountTreeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	forest, err := h.accountService.GetAccountHierarchy(c.Request.Context(), params.Segment)
	if err != nil {
		respondError(c, err, "build account hierarchy")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountNodeResponses(forest))
}

// getAccountBalances godoc
// @Summary List posting accounts with balances
// @Tags accounts
// @Produce  json
// @Param   accountType query string true "Account type"
// @Param   segment query string false "Segment"
// @Success 200 {array} dto.AccountBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute balances"
// @Security BearerAuth
// @Router /accounts/balances [get]
func (h *accountHandler) getAccountBalances(c *gin.Context) {
	var params dto.AccountBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	balances, err := h.accountService.GetAccountsWithBalance(c.Request.Context(), domain.AccountType(params.AccountType), params.Segment)
	if err != nil {
		respondError(c, err, "compute balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountBalanceResponses(balances))
}

// getAccountLedger godoc
// @Summary Get the ledger of an account
// @Description Returns every posted line of the account with the running balance after each line
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to build ledger"
// @Security BearerAuth
// @Router /accounts/{id}/ledger [get]
func (h *accountHandler) getAccountLedger(c *gin.Context) {
	accountID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	ledger, err := h.accountService.GetAccountLedger(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "build ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(ledger))
}

// updateAccount godoc
// @Summary Update an account
// @Description Renames, reparents or changes the posting flag of an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Change violates an accounting rule"
// @Failure 500 {object} dto.ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	accountID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	before, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "update account")
		return
	}

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondError(c, err, "update account")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditUpdate,
		Module:     auditModuleAccounts,
		ResourceID: strconv.FormatInt(accountID, 10),
		Before:     before,
		After:      updated,
	})
	c.JSON(http.StatusOK, dto.ToAccountResponse(updated))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that has no journal lines and no child accounts
// @Tags accounts
// @Param   id path int true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Account is referenced"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	before, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "delete account")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID, userID); err != nil {
		respondError(c, err, "delete account")
		return
	}

	recordAudit(c, h.auditService, portssvc.AuditRecord{
		UserID:     userID,
		Action:     domain.AuditDelete,
		Module:     auditModuleAccounts,
		ResourceID: strconv.FormatInt(accountID, 10),
		Before:     before,
	})
	c.Status(http.StatusNoContent)
}

// setupDefaultCOA godoc
// @Summary Seed the default root accounts
// @Description Creates the Assets, Liabilities, Equity, Income and Expenses roots that do not exist yet
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   request body dto.SetupDefaultCOARequest false "Target segment"
// @Success 201 {object} dto.ListAccountsResponse "Accounts created on this call"
// @Success 200 {object} dto.ListAccountsResponse "Nothing to create"
// @Failure 500 {object} dto.ErrorResponse "Failed to set up default accounts"
// @Security BearerAuth
// @Router /accounts/setup-default [post]
func (h *accountHandler) setupDefaultCOA(c *gin.Context) {
	var req dto.SetupDefaultCOARequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	created, err := h.accountService.SetupDefaultCOA(c.Request.Context(), req.Segment, userID)
	if err != nil {
		respondError(c, err, "set up default accounts")
		return
	}

	status := http.StatusOK
	if len(created) > 0 {
		status = http.StatusCreated
		recordAudit(c, h.auditService, portssvc.AuditRecord{
			UserID:     userID,
			Action:     domain.AuditSeed,
			Module:     auditModuleAccounts,
			ResourceID: created[0].Segment,
			After:      created,
		})
	}
	c.JSON(status, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(created)})
}
