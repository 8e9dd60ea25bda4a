package services

import (
	"context"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance lists every posting account's balance, optionally limited to a segment
	// and to entries dated on or before asOf.
	TrialBalance(ctx context.Context, segment string, asOf *time.Time) (*domain.TrialBalance, error)
}
