package models

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is the accounts table row.
type Account struct {
	AccountID     int64       `db:"account_id"`
	Segment       string      `db:"segment"`
	Code          string      `db:"code"`
	Name          string      `db:"name"`
	AccountType   AccountType `db:"account_type"`
	NormalBalance string      `db:"normal_balance"`
	IsPosting     bool        `db:"is_posting"`
	ParentID      *int64      `db:"parent_id"` // Nullable
	AuditFields
}

// AccountTotals is an aggregate of posted lines for one account.
type AccountTotals struct {
	AccountID   int64           `db:"account_id"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
}
