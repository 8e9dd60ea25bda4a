package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID      int64     `db:"entry_id"`
	VoucherNo    string    `db:"voucher_no"`
	VoucherSeq   int64     `db:"voucher_seq"`
	VoucherType  string    `db:"voucher_type"`
	EntryDate    time.Time `db:"entry_date"`
	Narration    string    `db:"narration"`
	Status       string    `db:"status"`
	ReversalOfID *int64    `db:"reversal_of_id"` // Nullable
	ReversedByID *int64    `db:"reversed_by_id"` // Nullable
	AuditFields
}

// JournalLine is the journal_lines table row. Exactly one of Debit and Credit is non-zero.
type JournalLine struct {
	LineID      int64           `db:"line_id"`
	EntryID     int64           `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   int64           `db:"account_id"`
	AccountCode string          `db:"account_code"` // joined from accounts
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Memo        string          `db:"memo"`
}

// LedgerLine is a journal line joined with its entry header.
type LedgerLine struct {
	EntryID     int64           `db:"entry_id"`
	LineID      int64           `db:"line_id"`
	VoucherNo   string          `db:"voucher_no"`
	VoucherType string          `db:"voucher_type"`
	EntryDate   time.Time       `db:"entry_date"`
	Narration   string          `db:"narration"`
	Memo        string          `db:"memo"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}
