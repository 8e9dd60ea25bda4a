package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// ReportingRepositoryFacade aggregates posted lines for balance reports.
type ReportingRepositoryFacade interface {
	// ListAccountTotals sums debits and credits per account for accounts matching the
	// filter, counting only entries dated on or before asOf when asOf is set.
	// Accounts without lines are absent from the map.
	ListAccountTotals(ctx context.Context, filter domain.AccountFilter, asOf *time.Time) (map[int64]domain.AccountTotals, error)
}
