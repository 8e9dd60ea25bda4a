package dto

import (
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit line of a new journal entry.
type JournalLineRequest struct {
	AccountID int64           `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo" binding:"max=500"`
}

// CreateJournalEntryRequest defines the data needed to post a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   string               `json:"entryDate" binding:"required,datetime=2006-01-02"`
	VoucherType domain.VoucherType   `json:"voucherType" binding:"omitempty,oneof=JOURNAL SALES PURCHASE PAYMENT RECEIPT"`
	Narration   string               `json:"narration" binding:"max=1000"`
	Lines       []JournalLineRequest `json:"lines" binding:"dive"`
}

// ReverseJournalEntryRequest defines the optional overrides for a reversing entry.
type ReverseJournalEntryRequest struct {
	EntryDate string `json:"entryDate" binding:"omitempty,datetime=2006-01-02"` // Defaults to the original entry's date
	Narration string `json:"narration" binding:"max=1000"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	VoucherType  string `form:"voucherType" binding:"omitempty,oneof=JOURNAL SALES PURCHASE PAYMENT RECEIPT"`
	From         string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To           string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit        int    `form:"limit,default=20" binding:"min=1,max=500"`
	NextToken    string `form:"nextToken"`
	IncludeLines bool   `form:"includeLines"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      int64           `json:"lineID"`
	LineNo      int             `json:"lineNo"`
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      int64                 `json:"entryID"`
	VoucherNo    string                `json:"voucherNo"`
	VoucherType  domain.VoucherType    `json:"voucherType"`
	EntryDate    string                `json:"entryDate"`
	Narration    string                `json:"narration"`
	Status       domain.EntryStatus    `json:"status"`
	ReversalOfID *int64                `json:"reversalOfID,omitempty"`
	ReversedByID *int64                `json:"reversedByID,omitempty"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	var lines []JournalLineResponse
	if len(e.Lines) > 0 {
		lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			lines[i] = JournalLineResponse{
				LineID:      l.LineID,
				LineNo:      l.LineNo,
				AccountID:   l.AccountID,
				AccountCode: l.AccountCode,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Memo:        l.Memo,
			}
		}
	}
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		VoucherNo:    e.VoucherNo,
		VoucherType:  e.VoucherType,
		EntryDate:    e.EntryDate.Format(DateLayout),
		Narration:    e.Narration,
		Status:       e.Status,
		ReversalOfID: e.ReversalOfID,
		ReversedByID: e.ReversedByID,
		TotalDebit:   e.TotalDebit(),
		TotalCredit:  e.TotalCredit(),
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		e := e
		res[i] = ToJournalEntryResponse(&e)
	}
	return res
}
