package services

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/dto"
)

// PrecisionProvider supplies the decimal precision in force at call time.
type PrecisionProvider interface {
	GetPrecision(ctx context.Context) (domain.Precision, error)
}

// SettingsSvcFacade reads and updates system settings.
type SettingsSvcFacade interface {
	PrecisionProvider

	// UpdatePrecision changes the stored precisions; omitted fields keep their current value.
	UpdatePrecision(ctx context.Context, req dto.UpdatePrecisionRequest, userID string) (domain.Precision, error)
}
