package dto

import (
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,max=32"`
	Name        string             `json:"name" binding:"required,max=200"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentID    *int64             `json:"parentID"` // Optional, required for posting accounts
	IsPosting   bool               `json:"isPosting"`
	Segment     string             `json:"segment" binding:"omitempty,segment"` // Defaults to GENERAL
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ParentID    *int64  `json:"parentID"`
	ClearParent bool    `json:"clearParent"` // Detach from the current parent
	IsPosting   *bool   `json:"isPosting"`
}

// SetupDefaultCOARequest selects the segment the default roots are seeded into.
type SetupDefaultCOARequest struct {
	Segment string `json:"segment" binding:"omitempty,segment"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     int64              `json:"accountID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	NormalBalance domain.BalanceSide `json:"normalBalance"`
	IsPosting     bool               `json:"isPosting"`
	ParentID      *int64             `json:"parentID,omitempty"`
	Segment       string             `json:"segment"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		IsPosting:     acc.IsPosting,
		ParentID:      acc.ParentID,
		Segment:       acc.Segment,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		acc := acc
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Segment     string `form:"segment" binding:"omitempty,segment"`
	AccountType string `form:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	PostingOnly bool   `form:"postingOnly"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountTreeParams defines query parameters for the hierarchy view.
type AccountTreeParams struct {
	Segment string `form:"segment" binding:"omitempty,segment"`
}

// AccountNodeResponse is one node of the account tree.
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

// ToAccountNodeResponses converts a forest of domain.AccountNode recursively.
func ToAccountNodeResponses(nodes []domain.AccountNode) []AccountNodeResponse {
	res := make([]AccountNodeResponse, len(nodes))
	for i, n := range nodes {
		n := n
		res[i] = AccountNodeResponse{
			AccountResponse: ToAccountResponse(&n.Account),
			Children:        ToAccountNodeResponses(n.Children),
		}
	}
	return res
}

// AccountBalancesParams defines query parameters for the balances listing.
type AccountBalancesParams struct {
	AccountType string `form:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Segment     string `form:"segment" binding:"omitempty,segment"`
}

// AccountBalanceResponse defines the data returned for an account with its balance.
type AccountBalanceResponse struct {
	AccountResponse
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// ToAccountBalanceResponses converts domain balances to DTOs.
func ToAccountBalanceResponses(balances []domain.AccountBalance) []AccountBalanceResponse {
	res := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		b := b
		res[i] = AccountBalanceResponse{
			AccountResponse: ToAccountResponse(&b.Account),
			TotalDebit:      b.TotalDebit,
			TotalCredit:     b.TotalCredit,
			Balance:         b.Balance,
		}
	}
	return res
}

// LedgerRowResponse is one posted line with the running balance after it.
type LedgerRowResponse struct {
	EntryID        int64           `json:"entryID"`
	LineID         int64           `json:"lineID"`
	VoucherNo      string          `json:"voucherNo"`
	VoucherType    string          `json:"voucherType"`
	EntryDate      string          `json:"entryDate"`
	Narration      string          `json:"narration"`
	Memo           string          `json:"memo,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedgerResponse defines the data returned for an account ledger.
type AccountLedgerResponse struct {
	Account        AccountResponse     `json:"account"`
	Rows           []LedgerRowResponse `json:"rows"`
	TotalDebit     decimal.Decimal     `json:"totalDebit"`
	TotalCredit    decimal.Decimal     `json:"totalCredit"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
}

// ToAccountLedgerResponse converts a domain.AccountLedger to its DTO.
func ToAccountLedgerResponse(l *domain.AccountLedger) AccountLedgerResponse {
	rows := make([]LedgerRowResponse, len(l.Rows))
	for i, r := range l.Rows {
		rows[i] = LedgerRowResponse{
			EntryID:        r.EntryID,
			LineID:         r.LineID,
			VoucherNo:      r.VoucherNo,
			VoucherType:    string(r.VoucherType),
			EntryDate:      r.EntryDate.Format(DateLayout),
			Narration:      r.Narration,
			Memo:           r.Memo,
			Debit:          r.Debit,
			Credit:         r.Credit,
			RunningBalance: r.RunningBalance,
		}
	}
	return AccountLedgerResponse{
		Account:        ToAccountResponse(&l.Account),
		Rows:           rows,
		TotalDebit:     l.TotalDebit,
		TotalCredit:    l.TotalCredit,
		ClosingBalance: l.ClosingBalance,
	}
}
