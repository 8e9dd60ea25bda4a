package services

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency. The first currency becomes the base.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)

	// SetBaseCurrency makes a currency the single base currency.
	SetBaseCurrency(ctx context.Context, currencyCode string, userID string) (*domain.Currency, error)

	// UpdateExchangeRate changes the rate of a non-base currency.
	UpdateExchangeRate(ctx context.Context, currencyCode string, req dto.UpdateExchangeRateRequest, userID string) (*domain.Currency, error)

	// DeleteCurrency removes a non-base currency.
	DeleteCurrency(ctx context.Context, currencyCode string, userID string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
// This is a facade for clients that need access to all operations
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
