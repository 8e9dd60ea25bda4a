package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// SettingsRepositoryFacade reads and writes the single system_settings row.
type SettingsRepositoryFacade interface {
	// GetPrecision returns the stored precision, or ErrNotFound when no row exists.
	GetPrecision(ctx context.Context) (*domain.Precision, error)

	// SavePrecision inserts or replaces the stored precision.
	SavePrecision(ctx context.Context, precision domain.Precision, userID string, now time.Time) error
}
