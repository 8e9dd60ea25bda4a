package services

import (
	"context"
	"encoding/json"
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

type auditService struct {
	BaseService
	repo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates the service that writes and reads the audit trail
func NewAuditService(repo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{repo: repo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record JSON-encodes the snapshots and stores one audit row.
func (s *auditService) Record(ctx context.Context, rec portssvc.AuditRecord) error {
	if rec.Module == "" || rec.Action == "" {
		return fmt.Errorf("%w: audit module and action are required", apperrors.ErrValidation)
	}

	before, err := snapshot(rec.Before)
	if err != nil {
		return fmt.Errorf("failed to encode audit before snapshot: %w", err)
	}
	after, err := snapshot(rec.After)
	if err != nil {
		return fmt.Errorf("failed to encode audit after snapshot: %w", err)
	}

	entry := domain.AuditLog{
		UserID:     rec.UserID,
		Action:     rec.Action,
		Module:     rec.Module,
		ResourceID: rec.ResourceID,
		Before:     before,
		After:      after,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.SaveAuditLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save audit log",
			slog.String("module", rec.Module),
			slog.String("action", string(rec.Action)),
			slog.String("resource_id", rec.ResourceID))
		return err
	}

	s.LogDebug(ctx, "Audit log recorded",
		slog.String("module", rec.Module),
		slog.String("action", string(rec.Action)),
		slog.String("resource_id", rec.ResourceID))
	return nil
}

func (s *auditService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLog, error) {
	filter := domain.AuditFilter{
		Module:     strings.TrimSpace(params.Module),
		ResourceID: strings.TrimSpace(params.ResourceID),
		Limit:      params.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	logs, err := s.repo.ListAuditLogs(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, err
	}
	return logs, nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
