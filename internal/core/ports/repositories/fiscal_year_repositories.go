package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal years
type FiscalYearReader interface {
	FindFiscalYearByID(ctx context.Context, fiscalYearID int64) (*domain.FiscalYear, error)

	// FindFiscalYearByDate returns the fiscal year containing date, or ErrNotFound.
	FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)

	// FindOverlapping returns fiscal years whose range intersects [start, end].
	FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.FiscalYear, error)

	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal years
type FiscalYearWriter interface {
	// SaveFiscalYear persists a new fiscal year and returns it with its generated ID.
	SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) (*domain.FiscalYear, error)

	// ActivateFiscalYear deactivates every fiscal year and activates one, atomically.
	ActivateFiscalYear(ctx context.Context, fiscalYearID int64, userID string, now time.Time) error

	LockFiscalYear(ctx context.Context, fiscalYearID int64, userID string, now time.Time) error

	DeleteFiscalYear(ctx context.Context, fiscalYearID int64) error
}

// FiscalYearRepositoryFacade combines all fiscal year repository interfaces
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
