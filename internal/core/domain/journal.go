package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus tracks a journal entry through validation and posting.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Validated EntryStatus = "VALIDATED"
	Posted    EntryStatus = "POSTED"
)

// VoucherType categorises journal entries; each type has its own number sequence.
type VoucherType string

const (
	ManualJournal   VoucherType = "JOURNAL"
	SalesVoucher    VoucherType = "SALES"
	PurchaseVoucher VoucherType = "PURCHASE"
	PaymentVoucher  VoucherType = "PAYMENT"
	ReceiptVoucher  VoucherType = "RECEIPT"
)

var voucherPrefixes = map[VoucherType]string{
	ManualJournal:   "JV",
	SalesVoucher:    "SV",
	PurchaseVoucher: "PV",
	PaymentVoucher:  "PMT",
	ReceiptVoucher:  "RCT",
}

// IsValid reports whether v is a known voucher type.
func (v VoucherType) IsValid() bool {
	_, ok := voucherPrefixes[v]
	return ok
}

// Prefix returns the voucher number prefix for the type.
func (v VoucherType) Prefix() string {
	if p, ok := voucherPrefixes[v]; ok {
		return p
	}
	return "JV"
}

// FormatVoucherNo renders a sequence value as a human-readable voucher number, e.g. JV-000042.
func (v VoucherType) FormatVoucherNo(seq int64) string {
	return fmt.Sprintf("%s-%06d", v.Prefix(), seq)
}

// JournalEntry is a balanced set of journal lines posted atomically.
type JournalEntry struct {
	EntryID      int64         `json:"entryID"`
	VoucherNo    string        `json:"voucherNo"`
	VoucherSeq   int64         `json:"voucherSeq"`
	VoucherType  VoucherType   `json:"voucherType"`
	EntryDate    time.Time     `json:"entryDate"`
	Narration    string        `json:"narration"`
	Status       EntryStatus   `json:"status"`
	ReversalOfID *int64        `json:"reversalOfID,omitempty"`
	ReversedByID *int64        `json:"reversedByID,omitempty"`
	Lines        []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// TotalDebit sums the debit side of the entry's lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of the entry's lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// JournalLine is one debit or credit against a posting account.
type JournalLine struct {
	LineID      int64           `json:"lineID"`
	EntryID     int64           `json:"entryID"`
	LineNo      int             `json:"lineNo"`
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo,omitempty"`
}

// EntryFilter narrows journal entry listings.
type EntryFilter struct {
	VoucherType  VoucherType
	From         *time.Time
	To           *time.Time
	Limit        int
	NextToken    *string
	IncludeLines bool
}
