package services

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/dto"
)

// AuditRecord describes one mutation to be written to the audit log.
// Before and After are JSON-encoded snapshots; either may be nil.
type AuditRecord struct {
	UserID     string
	Action     domain.AuditAction
	Module     string
	ResourceID string
	Before     any
	After      any
}

// AuditSvcFacade records and lists audit log entries.
type AuditSvcFacade interface {
	Record(ctx context.Context, rec AuditRecord) error
	ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLog, error)
}
