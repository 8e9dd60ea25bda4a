package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	"github.com/SscSPs/textile_erp/internal/models"
	"github.com/SscSPs/textile_erp/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// ListAccountTotals sums posted debits and credits per account, optionally up
// to and including asOf. Accounts without posted lines are absent.
func (r *reportingRepository) ListAccountTotals(ctx context.Context, filter domain.AccountFilter, asOf *time.Time) (map[int64]domain.AccountTotals, error) {
	args := []any{string(domain.Posted)}
	conds := []string{"e.status = $1"}

	accountConds, args := accountFilterClause("a", filter, args)
	conds = append(conds, accountConds...)
	if asOf != nil {
		args = append(args, *asOf)
		conds = append(conds, "e.entry_date <= $"+strconv.Itoa(len(args)))
	}

	query := `
		SELECT
			a.account_id,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE ` + strings.Join(conds, " AND ") + `
		GROUP BY a.account_id;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error querying account totals", err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AccountTotals, error) {
		var t models.AccountTotals
		err := row.Scan(&t.AccountID, &t.TotalDebit, &t.TotalCredit)
		return t, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "error scanning account totals", err)
	}
	return mapping.ToDomainAccountTotals(totals), nil
}
