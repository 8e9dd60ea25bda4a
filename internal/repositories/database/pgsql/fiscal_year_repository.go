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
)

const fiscalYearColumns = `fiscal_year_id, name, start_date, end_date, is_active, is_locked,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxFiscalYearRepository stores fiscal years.
type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

func scanFiscalYear(row pgx.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID, &m.Name, &m.StartDate, &m.EndDate, &m.IsActive, &m.IsLocked,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFiscalYearRepository) findOne(ctx context.Context, query string, args ...any) (*domain.FiscalYear, error) {
	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year", err)
	}
	d := mapping.ToDomainFiscalYear(m)
	return &d, nil
}

func (r *PgxFiscalYearRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.FiscalYear, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	defer rows.Close()

	modelYears, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FiscalYear, error) {
		return scanFiscalYear(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan fiscal years", err)
	}

	years := make([]domain.FiscalYear, len(modelYears))
	for i, m := range modelYears {
		years[i] = mapping.ToDomainFiscalYear(m)
	}
	return years, nil
}

// FindFiscalYearByID retrieves a fiscal year by id.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID int64) (*domain.FiscalYear, error) {
	return r.findOne(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE fiscal_year_id = $1;`, fiscalYearID)
}

// FindFiscalYearByDate retrieves the fiscal year whose range contains date.
func (r *PgxFiscalYearRepository) FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	return r.findOne(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE $1 BETWEEN start_date AND end_date;`, date)
}

// FindOverlapping retrieves fiscal years whose range intersects [start, end].
func (r *PgxFiscalYearRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.FiscalYear, error) {
	return r.findMany(ctx,
		`SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE start_date <= $2 AND end_date >= $1 ORDER BY start_date;`,
		start, end,
	)
}

// ListFiscalYears retrieves all fiscal years in chronological order.
func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return r.findMany(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years ORDER BY start_date;`)
}

// SaveFiscalYear inserts a fiscal year. An active year deactivates the others.
// The exclusion constraint on the date range catches overlaps that slip past
// the service check under concurrency.
func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalYear, error) {
	m := mapping.ToModelFiscalYear(fy)

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if m.IsActive {
			if _, err := tx.Exec(ctx, `UPDATE fiscal_years SET is_active = FALSE WHERE is_active;`); err != nil {
				return apperrors.NewAppError(500, "failed to deactivate fiscal years", err)
			}
		}
		query := `
			INSERT INTO fiscal_years (name, start_date, end_date, is_active, is_locked,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING fiscal_year_id;
		`
		err := tx.QueryRow(ctx, query,
			m.Name, m.StartDate, m.EndDate, m.IsActive, m.IsLocked,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		).Scan(&m.FiscalYearID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to save fiscal year", err)
		}
		return nil
	})
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgExclusionViolation:
			conflicting := "another fiscal year"
			if overlaps, lookupErr := r.FindOverlapping(ctx, m.StartDate, m.EndDate); lookupErr == nil && len(overlaps) > 0 {
				conflicting = overlaps[0].Name
			}
			return nil, &apperrors.FiscalYearOverlapError{Conflicting: conflicting}
		case pgUniqueViolation:
			return nil, fmt.Errorf("%w: fiscal year %s", apperrors.ErrDuplicate, m.Name)
		}
		return nil, err
	}

	saved := mapping.ToDomainFiscalYear(m)
	return &saved, nil
}

// ActivateFiscalYear makes fiscalYearID the only active fiscal year. Locked
// years are left untouched and reported as not found.
func (r *PgxFiscalYearRepository) ActivateFiscalYear(ctx context.Context, fiscalYearID int64, userID string, now time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE fiscal_years SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE is_active AND fiscal_year_id <> $3;`,
			now, userID, fiscalYearID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to deactivate fiscal years", err)
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE fiscal_years SET is_active = TRUE, last_updated_at = $1, last_updated_by = $2 WHERE fiscal_year_id = $3 AND NOT is_locked;`,
			now, userID, fiscalYearID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to activate fiscal year", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// LockFiscalYear closes a fiscal year for posting.
func (r *PgxFiscalYearRepository) LockFiscalYear(ctx context.Context, fiscalYearID int64, userID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE fiscal_years SET is_locked = TRUE, last_updated_at = $1, last_updated_by = $2 WHERE fiscal_year_id = $3;`,
		now, userID, fiscalYearID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock fiscal year", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFiscalYear removes a fiscal year that is neither active nor locked.
func (r *PgxFiscalYearRepository) DeleteFiscalYear(ctx context.Context, fiscalYearID int64) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM fiscal_years WHERE fiscal_year_id = $1 AND NOT is_active AND NOT is_locked;`,
		fiscalYearID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete fiscal year", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
