package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	"github.com/SscSPs/textile_erp/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// system_settings holds a single row keyed by this id.
const settingsRowID = 1

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetPrecision reads the stored precision settings.
func (r *PgxSettingsRepository) GetPrecision(ctx context.Context) (*domain.Precision, error) {
	query := `
		SELECT amount_decimals, quantity_decimals, rate_decimals, last_updated_at, last_updated_by
		FROM system_settings
		WHERE settings_id = $1;
	`
	var m models.SystemSettings
	err := r.Pool.QueryRow(ctx, query, settingsRowID).Scan(
		&m.AmountDecimals, &m.QuantityDecimals, &m.RateDecimals, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to read precision settings", err)
	}
	return &domain.Precision{
		AmountDecimals:   m.AmountDecimals,
		QuantityDecimals: m.QuantityDecimals,
		RateDecimals:     m.RateDecimals,
	}, nil
}

// SavePrecision upserts the precision settings.
func (r *PgxSettingsRepository) SavePrecision(ctx context.Context, precision domain.Precision, userID string, now time.Time) error {
	query := `
		INSERT INTO system_settings (settings_id, amount_decimals, quantity_decimals, rate_decimals, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (settings_id) DO UPDATE SET
			amount_decimals = EXCLUDED.amount_decimals,
			quantity_decimals = EXCLUDED.quantity_decimals,
			rate_decimals = EXCLUDED.rate_decimals,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		settingsRowID, precision.AmountDecimals, precision.QuantityDecimals, precision.RateDecimals, now, userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save precision settings", err)
	}
	return nil
}
