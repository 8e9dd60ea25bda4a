package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the base currency, or ErrNotFound when none is set.
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency. When the currency is base, every other
	// currency loses the flag in the same transaction.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// SetBaseCurrency makes code the only base currency and resets its rate to 1.
	SetBaseCurrency(ctx context.Context, currencyCode string, userID string, now time.Time) error

	// UpdateExchangeRate changes the rate of a currency.
	UpdateExchangeRate(ctx context.Context, currencyCode string, rate decimal.Decimal, userID string, now time.Time) error

	// DeleteCurrency removes a currency.
	DeleteCurrency(ctx context.Context, currencyCode string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
