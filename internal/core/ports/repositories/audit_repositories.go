package repositories

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// AuditRepositoryFacade persists and lists audit log rows.
type AuditRepositoryFacade interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error

	// ListAuditLogs returns matching rows, newest first.
	ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, error)
}
