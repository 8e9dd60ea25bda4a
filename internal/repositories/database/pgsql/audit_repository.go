package pgsql

import (
	"context"
	"strconv"
	"strings"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	"github.com/SscSPs/textile_erp/internal/models"
	"github.com/SscSPs/textile_erp/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditLog appends an audit record.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	m := mapping.ToModelAuditLog(log)
	query := `
		INSERT INTO audit_logs (user_id, action, module, resource_id, before_data, after_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.Action, m.Module, m.ResourceID, m.Before, m.After, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save audit log", err)
	}
	return nil
}

// ListAuditLogs retrieves the most recent audit records matching filter.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, error) {
	var conds []string
	var args []any
	if filter.Module != "" {
		args = append(args, filter.Module)
		conds = append(conds, "module = $"+strconv.Itoa(len(args)))
	}
	if filter.ResourceID != "" {
		args = append(args, filter.ResourceID)
		conds = append(conds, "resource_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT audit_id, user_id, action, module, resource_id, before_data, after_data, created_at FROM audit_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY audit_id DESC LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, filter.Limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit logs", err)
	}
	defer rows.Close()

	modelLogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var m models.AuditLog
		err := row.Scan(&m.AuditID, &m.UserID, &m.Action, &m.Module, &m.ResourceID, &m.Before, &m.After, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan audit logs", err)
	}

	logs := make([]domain.AuditLog, len(modelLogs))
	for i, m := range modelLogs {
		logs[i] = mapping.ToDomainAuditLog(m)
	}
	return logs, nil
}
