package models

import "github.com/shopspring/decimal"

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string          `db:"currency_code"` // Primary Key (e.g., "USD")
	Symbol       string          `db:"symbol"`        // e.g., "$"
	Name         string          `db:"name"`          // e.g., "US Dollar"
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	IsBase       bool            `db:"is_base"`
	AuditFields
}
