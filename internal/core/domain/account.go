package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalBalance returns the side on which the account type naturally increases.
func (t AccountType) NormalBalance() BalanceSide {
	switch t {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// BalanceSide is either DEBIT or CREDIT.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// DefaultSegment is used when a caller does not tag data with a business line.
const DefaultSegment = "GENERAL"

// NormalizeSegment trims and upper-cases a segment label, defaulting to DefaultSegment.
func NormalizeSegment(segment string) string {
	s := strings.ToUpper(strings.TrimSpace(segment))
	if s == "" {
		return DefaultSegment
	}
	return s
}

// Account represents a node in the chart of accounts.
type Account struct {
	AccountID     int64       `json:"accountID"`
	Code          string      `json:"code"` // unique within Segment
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	NormalBalance BalanceSide `json:"normalBalance"`
	IsPosting     bool        `json:"isPosting"` // leaf accounts receive journal lines
	ParentID      *int64      `json:"parentID,omitempty"`
	Segment       string      `json:"segment"`
	AuditFields
}

// AccountNode is an account with its nested children, used for tree views.
type AccountNode struct {
	Account
	Children []AccountNode `json:"children"`
}

// AccountBalance is a posting account with its net balance on its normal side.
type AccountBalance struct {
	Account
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Segment     string
	AccountType AccountType
	PostingOnly bool
}
