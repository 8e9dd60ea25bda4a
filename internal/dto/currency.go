package dto

import (
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string           `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol       string           `json:"symbol" binding:"max=8"` // Defaults from the ISO catalogue
	Name         string           `json:"name" binding:"max=100"` // Defaults to the code
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`           // Defaults to 1
	IsBase       bool             `json:"isBase"`
}

// UpdateExchangeRateRequest changes the rate of a non-base currency.
type UpdateExchangeRateRequest struct {
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	IsBase        bool            `json:"isBase"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		ExchangeRate:  curr.ExchangeRate,
		IsBase:        curr.IsBase,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		curr := curr
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
