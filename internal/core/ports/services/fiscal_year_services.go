package services

import (
	"context"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/dto"
)

// FiscalYearReaderSvc defines read operations for fiscal years
type FiscalYearReaderSvc interface {
	GetFiscalYear(ctx context.Context, fiscalYearID int64) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// FindFiscalYearForDate returns the fiscal year containing date, or ErrNotFound.
	FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)
}

// FiscalYearWriterSvc defines write operations for fiscal years
type FiscalYearWriterSvc interface {
	// CreateFiscalYear persists a non-overlapping fiscal year. The first one becomes active.
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)

	// ActivateFiscalYear makes a fiscal year the single active one.
	ActivateFiscalYear(ctx context.Context, fiscalYearID int64, userID string) (*domain.FiscalYear, error)

	// LockFiscalYear closes a fiscal year for posting. Locking cannot be undone.
	LockFiscalYear(ctx context.Context, fiscalYearID int64, userID string) (*domain.FiscalYear, error)

	DeleteFiscalYear(ctx context.Context, fiscalYearID int64, userID string) error
}

// FiscalYearSvcFacade combines all fiscal year service interfaces
type FiscalYearSvcFacade interface {
	FiscalYearReaderSvc
	FiscalYearWriterSvc
}
