package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a journal line joined with its entry, as read for an account ledger.
type LedgerLine struct {
	EntryID     int64           `json:"entryID"`
	LineID      int64           `json:"lineID"`
	VoucherNo   string          `json:"voucherNo"`
	VoucherType VoucherType     `json:"voucherType"`
	EntryDate   time.Time       `json:"entryDate"`
	Narration   string          `json:"narration"`
	Memo        string          `json:"memo,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerRow is a ledger line with the account's running balance after it.
type LedgerRow struct {
	LedgerLine
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is an account with all of its posted lines in posting order.
type AccountLedger struct {
	Account        Account         `json:"account"`
	Rows           []LedgerRow     `json:"rows"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// AccountTotals holds the summed debit and credit of one account's lines.
type AccountTotals struct {
	AccountID   int64
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}
