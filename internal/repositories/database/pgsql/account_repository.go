package pgsql

import (
	"context"
	"errors"
	"fmt"
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

const accountColumns = `account_id, segment, code, name, account_type, normal_balance, is_posting, parent_id,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository stores the chart of accounts.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.Segment, &m.Code, &m.Name, &m.AccountType, &m.NormalBalance, &m.IsPosting, &m.ParentID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account and returns it with its generated id. The
// parent is share-locked and re-checked in the same transaction, so it cannot
// become a posting account while the child is written.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (segment, code, name, account_type, normal_balance, is_posting, parent_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING account_id;
	`
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if m.ParentID != nil {
			if err := lockGroupingParent(ctx, tx, *m.ParentID); err != nil {
				return err
			}
		}
		err := tx.QueryRow(ctx, query,
			m.Segment, m.Code, m.Name, m.AccountType, m.NormalBalance, m.IsPosting, m.ParentID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		).Scan(&m.AccountID)
		if err != nil {
			if code, _ := pgErrorCode(err); code == pgUniqueViolation {
				return &apperrors.DuplicateCodeError{Code: m.Code, Segment: m.Segment}
			}
			return apperrors.NewAppError(500, "failed to insert account", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved := mapping.ToDomainAccount(m)
	return &saved, nil
}

// lockGroupingParent share-locks parentID and checks that it exists and is a
// grouping account.
func lockGroupingParent(ctx context.Context, tx pgx.Tx, parentID int64) error {
	var isPosting bool
	err := tx.QueryRow(ctx, `SELECT is_posting FROM accounts WHERE account_id = $1 FOR SHARE;`, parentID).Scan(&isPosting)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &apperrors.InvalidParentError{ParentID: parentID, Reason: "parent account does not exist"}
		}
		return apperrors.NewAppError(500, "failed to lock parent account", err)
	}
	if isPosting {
		return &apperrors.InvalidParentError{ParentID: parentID, Reason: "parent must be a grouping account"}
	}
	return nil
}

// FindAccountByID retrieves an account by its id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID", err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its code within a segment.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, segment string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE segment = $1 AND code = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, segment, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code", err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by id. Missing ids are
// simply absent from the result.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	result := make(map[int64]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// accountFilterClause renders the WHERE conditions of filter against the
// accounts table aliased as alias. Placeholders continue after args.
func accountFilterClause(alias string, filter domain.AccountFilter, args []any) ([]string, []any) {
	var conds []string
	if filter.Segment != "" {
		args = append(args, filter.Segment)
		conds = append(conds, fmt.Sprintf("%s.segment = $%d", alias, len(args)))
	}
	if filter.AccountType != "" {
		args = append(args, string(filter.AccountType))
		conds = append(conds, fmt.Sprintf("%s.account_type = $%d", alias, len(args)))
	}
	if filter.PostingOnly {
		conds = append(conds, alias+".is_posting")
	}
	return conds, args
}

// ListAccounts retrieves accounts matching filter ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	conds, args := accountFilterClause("a", filter, nil)
	query := `SELECT ` + prefixColumns("a", accountColumns) + ` FROM accounts a`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.code, a.name;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// CountChildAccounts returns how many accounts name accountID as their parent.
func (r *PgxAccountRepository) CountChildAccounts(ctx context.Context, accountID int64) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE parent_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count child accounts", err)
	}
	return count, nil
}

// CountJournalLines returns how many journal lines reference accountID.
func (r *PgxAccountRepository) CountJournalLines(ctx context.Context, accountID int64) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_lines WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal lines", err)
	}
	return count, nil
}

// UpdateAccount persists the mutable fields of an account: name, parent and
// posting flag. The account row is locked FOR UPDATE and the usage checks that
// guard the posting flag run in the same transaction, so a concurrent post
// (which share-locks its accounts) either finishes first and is counted, or
// sees the new flag.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var code string
		var wasPosting bool
		err := tx.QueryRow(ctx,
			`SELECT code, is_posting FROM accounts WHERE account_id = $1 FOR UPDATE;`, m.AccountID,
		).Scan(&code, &wasPosting)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock account", err)
		}

		if wasPosting && !m.IsPosting {
			var lines int
			if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM journal_lines WHERE account_id = $1;`, m.AccountID).Scan(&lines); err != nil {
				return apperrors.NewAppError(500, "failed to count journal lines", err)
			}
			if lines > 0 {
				return fmt.Errorf("%w: account %s has %d posted line(s) and must stay a posting account", apperrors.ErrBusinessRule, code, lines)
			}
		}
		if !wasPosting && m.IsPosting {
			var children int
			if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE parent_id = $1;`, m.AccountID).Scan(&children); err != nil {
				return apperrors.NewAppError(500, "failed to count child accounts", err)
			}
			if children > 0 {
				return fmt.Errorf("%w: account %s has %d child account(s) and cannot become a posting account", apperrors.ErrBusinessRule, code, children)
			}
		}
		if m.ParentID != nil {
			if err := lockGroupingParent(ctx, tx, *m.ParentID); err != nil {
				return err
			}
		}

		query := `
			UPDATE accounts
			SET name = $1, parent_id = $2, is_posting = $3, last_updated_at = $4, last_updated_by = $5
			WHERE account_id = $6;
		`
		if _, err := tx.Exec(ctx, query, m.Name, m.ParentID, m.IsPosting, m.LastUpdatedAt, m.LastUpdatedBy, m.AccountID); err != nil {
			return apperrors.NewAppError(500, "failed to update account", err)
		}
		return nil
	})
}

// DeleteAccount removes an account. The foreign keys on journal_lines and
// accounts.parent_id reject deletes of referenced accounts.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return &apperrors.ReferenceExistsError{
				Resource: "account",
				ID:       strconv.FormatInt(accountID, 10),
				Reason:   "referenced by journal lines or child accounts",
			}
		}
		return apperrors.NewAppError(500, "failed to delete account", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// prefixColumns qualifies a comma separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
