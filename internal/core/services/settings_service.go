package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
)

type settingsService struct {
	BaseService
	repo     portsrepo.SettingsRepositoryFacade
	defaults domain.Precision
}

// NewSettingsService creates the settings service. defaults apply until a settings row is stored.
func NewSettingsService(repo portsrepo.SettingsRepositoryFacade, defaults domain.Precision) portssvc.SettingsSvcFacade {
	return &settingsService{repo: repo, defaults: defaults}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetPrecision reads the precision in force now. Nothing is cached so an update applies
// to the next posting.
func (s *settingsService) GetPrecision(ctx context.Context) (domain.Precision, error) {
	p, err := s.repo.GetPrecision(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "No stored precision, using defaults")
			return s.defaults, nil
		}
		s.LogError(ctx, err, "Failed to read precision settings")
		return domain.Precision{}, err
	}
	return *p, nil
}

func (s *settingsService) UpdatePrecision(ctx context.Context, req dto.UpdatePrecisionRequest, userID string) (domain.Precision, error) {
	current, err := s.GetPrecision(ctx)
	if err != nil {
		return domain.Precision{}, err
	}

	if req.AmountDecimals != nil {
		current.AmountDecimals = *req.AmountDecimals
	}
	if req.QuantityDecimals != nil {
		current.QuantityDecimals = *req.QuantityDecimals
	}
	if req.RateDecimals != nil {
		current.RateDecimals = *req.RateDecimals
	}
	for _, d := range []int32{current.AmountDecimals, current.QuantityDecimals, current.RateDecimals} {
		if d < 0 || d > domain.MaxDecimals {
			return domain.Precision{}, fmt.Errorf("%w: decimals must be between 0 and %d", apperrors.ErrValidation, domain.MaxDecimals)
		}
	}

	if err := s.repo.SavePrecision(ctx, current, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to save precision settings")
		return domain.Precision{}, err
	}

	s.LogInfo(ctx, "Precision settings updated",
		slog.Int("amount_decimals", int(current.AmountDecimals)),
		slog.Int("quantity_decimals", int(current.QuantityDecimals)),
		slog.Int("rate_decimals", int(current.RateDecimals)))
	return current, nil
}
