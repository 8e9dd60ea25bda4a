package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
)

type fiscalYearService struct {
	BaseService
	repo portsrepo.FiscalYearRepositoryFacade
}

// NewFiscalYearService creates a new fiscal year service
func NewFiscalYearService(repo portsrepo.FiscalYearRepositoryFacade) portssvc.FiscalYearSvcFacade {
	return &fiscalYearService{repo: repo}
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: fiscal year name is required", apperrors.ErrValidation)
	}
	start, err := dto.ParseDate("startDate", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	end, err := dto.ParseDate("endDate", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: startDate must be before endDate", apperrors.ErrValidation)
	}

	overlapping, err := s.repo.FindOverlapping(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to check fiscal year overlap")
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, &apperrors.FiscalYearOverlapError{Conflicting: overlapping[0].Name}
	}

	existing, err := s.repo.ListFiscalYears(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years")
		return nil, err
	}

	saved, err := s.repo.SaveFiscalYear(ctx, domain.FiscalYear{
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		IsActive:    len(existing) == 0,
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save fiscal year", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created",
		slog.Int64("fiscal_year_id", saved.FiscalYearID),
		slog.String("name", saved.Name),
		slog.Bool("is_active", saved.IsActive))
	return saved, nil
}

func (s *fiscalYearService) GetFiscalYear(ctx context.Context, fiscalYearID int64) (*domain.FiscalYear, error) {
	fy, err := s.repo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: fiscal year %d", apperrors.ErrNotFound, fiscalYearID)
		}
		s.LogError(ctx, err, "Failed to find fiscal year", slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	return fy, nil
}

func (s *fiscalYearService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	fys, err := s.repo.ListFiscalYears(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years")
		return nil, err
	}
	return fys, nil
}

// FindFiscalYearForDate returns the fiscal year whose range contains date.
func (s *fiscalYearService) FindFiscalYearForDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	fy, err := s.repo.FindFiscalYearByDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no fiscal year covers %s", apperrors.ErrNotFound, date.Format(dto.DateLayout))
		}
		return nil, err
	}
	return fy, nil
}

func (s *fiscalYearService) ActivateFiscalYear(ctx context.Context, fiscalYearID int64, userID string) (*domain.FiscalYear, error) {
	fy, err := s.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.IsActive {
		return fy, nil
	}
	if fy.IsLocked {
		return nil, fmt.Errorf("%w: locked fiscal year %s cannot be activated", apperrors.ErrBusinessRule, fy.Name)
	}

	if err := s.repo.ActivateFiscalYear(ctx, fiscalYearID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to activate fiscal year", slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal year activated", slog.Int64("fiscal_year_id", fiscalYearID))
	return s.GetFiscalYear(ctx, fiscalYearID)
}

// LockFiscalYear closes the year to postings. There is no unlock.
func (s *fiscalYearService) LockFiscalYear(ctx context.Context, fiscalYearID int64, userID string) (*domain.FiscalYear, error) {
	fy, err := s.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.IsLocked {
		return fy, nil
	}

	if err := s.repo.LockFiscalYear(ctx, fiscalYearID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to lock fiscal year", slog.Int64("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal year locked", slog.Int64("fiscal_year_id", fiscalYearID))
	return s.GetFiscalYear(ctx, fiscalYearID)
}

func (s *fiscalYearService) DeleteFiscalYear(ctx context.Context, fiscalYearID int64, userID string) error {
	fy, err := s.GetFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return err
	}
	if fy.IsLocked {
		return fmt.Errorf("%w: fiscal year %s is locked", apperrors.ErrBusinessRule, fy.Name)
	}
	if fy.IsActive {
		return fmt.Errorf("%w: fiscal year %s is active", apperrors.ErrBusinessRule, fy.Name)
	}

	if err := s.repo.DeleteFiscalYear(ctx, fiscalYearID); err != nil {
		s.LogError(ctx, err, "Failed to delete fiscal year", slog.Int64("fiscal_year_id", fiscalYearID))
		return err
	}
	s.LogInfo(ctx, "Fiscal year deleted", slog.Int64("fiscal_year_id", fiscalYearID), slog.String("user_id", userID))
	return nil
}
