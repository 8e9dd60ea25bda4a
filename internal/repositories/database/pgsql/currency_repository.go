package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	"github.com/SscSPs/textile_erp/internal/models"
	"github.com/SscSPs/textile_erp/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const currencyColumns = `currency_code, symbol, name, exchange_rate, is_base,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.CurrencyCode, &c.Symbol, &c.Name, &c.ExchangeRate, &c.IsBase,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	return c, err
}

// SaveCurrency inserts a currency. A new base currency demotes the previous one.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		if modelCurr.IsBase {
			if _, err := tx.Exec(ctx, `UPDATE currencies SET is_base = FALSE WHERE is_base;`); err != nil {
				return apperrors.NewAppError(500, "failed to clear base currency", err)
			}
		}

		query := `
			INSERT INTO currencies (currency_code, symbol, name, exchange_rate, is_base,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		_, err := tx.Exec(ctx, query,
			modelCurr.CurrencyCode,
			modelCurr.Symbol,
			modelCurr.Name,
			modelCurr.ExchangeRate,
			modelCurr.IsBase,
			modelCurr.CreatedAt,
			modelCurr.CreatedBy,
			modelCurr.LastUpdatedAt,
			modelCurr.LastUpdatedBy,
		)
		if err != nil {
			if code, constraint := pgErrorCode(err); code == pgUniqueViolation {
				if constraint == "currencies_single_base_idx" {
					return fmt.Errorf("%w: base currency changed concurrently", apperrors.ErrConflict)
				}
				return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, modelCurr.CurrencyCode)
			}
			return apperrors.NewAppError(500, "failed to save currency "+modelCurr.CurrencyCode, err)
		}
		return nil
	})
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find currency by code "+currencyCode, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// FindBaseCurrency retrieves the base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base;`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find base currency", err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies, base currency first.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY is_base DESC, currency_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan currencies", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// SetBaseCurrency moves the base flag to currencyCode and pins its rate to 1.
func (r *PgxCurrencyRepository) SetBaseCurrency(ctx context.Context, currencyCode string, userID string, now time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE currencies SET is_base = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE is_base AND currency_code <> $3;`,
			now, userID, currencyCode,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to clear base currency", err)
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE currencies SET is_base = TRUE, exchange_rate = 1, last_updated_at = $1, last_updated_by = $2 WHERE currency_code = $3;`,
			now, userID, currencyCode,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to set base currency "+currencyCode, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// UpdateExchangeRate changes the rate of a currency against the base currency.
func (r *PgxCurrencyRepository) UpdateExchangeRate(ctx context.Context, currencyCode string, rate decimal.Decimal, userID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE currencies SET exchange_rate = $1, last_updated_at = $2, last_updated_by = $3 WHERE currency_code = $4;`,
		rate, now, userID, currencyCode,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update exchange rate for "+currencyCode, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCurrency removes a currency.
func (r *PgxCurrencyRepository) DeleteCurrency(ctx context.Context, currencyCode string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM currencies WHERE currency_code = $1;`, currencyCode)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete currency "+currencyCode, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
