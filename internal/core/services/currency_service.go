package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/shopspring/decimal"
)

// currencyService implements the CurrencySvcFacade interface
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	precision    portssvc.PrecisionProvider
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(repo portsrepo.CurrencyRepositoryFacade, precision portssvc.PrecisionProvider) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: repo,
		precision:    precision,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	catalogue := money.GetCurrency(code)
	if catalogue == nil {
		return nil, fmt.Errorf("%w: %q is not an ISO 4217 currency code", apperrors.ErrValidation, code)
	}

	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check currency", slog.String("currency_code", code))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, code)
	}

	isBase := req.IsBase
	if !isBase {
		_, err := s.currencyRepo.FindBaseCurrency(ctx)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			isBase = true
		case err != nil:
			s.LogError(ctx, err, "Failed to find base currency")
			return nil, err
		}
	}

	rate := decimal.NewFromInt(1)
	if !isBase && req.ExchangeRate != nil {
		rate, err = s.roundRate(ctx, *req.ExchangeRate)
		if err != nil {
			return nil, err
		}
	}

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		symbol = catalogue.Grapheme
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = code
	}

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       symbol,
		Name:         name,
		ExchangeRate: rate,
		IsBase:       isBase,
		AuditFields:  domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogFailure(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code), slog.Bool("is_base", isBase))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, code)
		}
		s.LogError(ctx, err, "Failed to find currency", slog.String("currency_code", code))
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, err
	}
	return currencies, nil
}

func (s *currencyService) SetBaseCurrency(ctx context.Context, currencyCode string, userID string) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	if currency.IsBase {
		return currency, nil
	}

	if err := s.currencyRepo.SetBaseCurrency(ctx, currency.CurrencyCode, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to set base currency", slog.String("currency_code", currency.CurrencyCode))
		return nil, err
	}

	s.LogInfo(ctx, "Base currency changed", slog.String("currency_code", currency.CurrencyCode))
	return s.GetCurrencyByCode(ctx, currency.CurrencyCode)
}

func (s *currencyService) UpdateExchangeRate(ctx context.Context, currencyCode string, req dto.UpdateExchangeRateRequest, userID string) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	if currency.IsBase {
		return nil, &apperrors.BaseCurrencyError{Code: currency.CurrencyCode, Reason: "the base currency rate is fixed at 1"}
	}

	rate, err := s.roundRate(ctx, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.currencyRepo.UpdateExchangeRate(ctx, currency.CurrencyCode, rate, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update exchange rate", slog.String("currency_code", currency.CurrencyCode))
		return nil, err
	}

	currency.ExchangeRate = rate
	currency.LastUpdatedAt = now
	currency.LastUpdatedBy = userID
	s.LogInfo(ctx, "Exchange rate updated", slog.String("currency_code", currency.CurrencyCode), slog.String("rate", rate.String()))
	return currency, nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, currencyCode string, userID string) error {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return err
	}
	if currency.IsBase {
		return &apperrors.BaseCurrencyError{Code: currency.CurrencyCode, Reason: "the base currency cannot be deleted"}
	}

	if err := s.currencyRepo.DeleteCurrency(ctx, currency.CurrencyCode); err != nil {
		s.LogFailure(ctx, err, "Failed to delete currency", slog.String("currency_code", currency.CurrencyCode))
		return err
	}
	s.LogInfo(ctx, "Currency deleted", slog.String("currency_code", currency.CurrencyCode), slog.String("user_id", userID))
	return nil
}

// roundRate rounds rate to the configured rate precision; the result must stay positive.
func (s *currencyService) roundRate(ctx context.Context, rate decimal.Decimal) (decimal.Decimal, error) {
	precision, err := s.precision.GetPrecision(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	rounded := precision.RoundRate(rate)
	if !rounded.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive at %d decimals", apperrors.ErrValidation, precision.RateDecimals)
	}
	return rounded, nil
}
