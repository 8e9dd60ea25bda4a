package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency. Exactly one currency is the base.
type Currency struct {
	CurrencyCode string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string          `json:"symbol"`       // e.g., "$"
	Name         string          `json:"name"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // units of base per unit of this currency
	IsBase       bool            `json:"isBase"`
	AuditFields
}
