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
	"github.com/SscSPs/textile_erp/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, voucher_no, voucher_seq, voucher_type, entry_date, narration, status,
	reversal_of_id, reversed_by_id, created_at, created_by, last_updated_at, last_updated_by`

const reversalOfConstraint = "journal_entries_reversal_of_key"

// PgxJournalRepository stores journal entries and their lines.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.VoucherNo, &m.VoucherSeq, &m.VoucherType, &m.EntryDate, &m.Narration, &m.Status,
		&m.ReversalOfID, &m.ReversedByID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry allocates the next voucher number for the entry's type and stores
// the header and all lines in one transaction, moving the entry from VALIDATED
// to POSTED. When the entry reverses another one, the original is linked back
// in the same transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	if entry.Status != domain.Validated {
		return nil, fmt.Errorf("%w: only validated entries can be posted, got %s", apperrors.ErrValidation, entry.Status)
	}
	m := mapping.ToModelJournalEntry(entry)
	m.Status = string(domain.Posted)
	lines := make([]models.JournalLine, len(entry.Lines))
	for i, l := range entry.Lines {
		lines[i] = mapping.ToModelJournalLine(l)
	}

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := lockPostingAccounts(ctx, tx, lines); err != nil {
			return err
		}

		// The row lock on the sequence serialises numbering per voucher type.
		seqQuery := `
			INSERT INTO voucher_sequences (voucher_type, last_value)
			VALUES ($1, 1)
			ON CONFLICT (voucher_type) DO UPDATE SET last_value = voucher_sequences.last_value + 1
			RETURNING last_value;
		`
		if err := tx.QueryRow(ctx, seqQuery, m.VoucherType).Scan(&m.VoucherSeq); err != nil {
			return apperrors.NewAppError(500, "failed to allocate voucher number", err)
		}
		m.VoucherNo = entry.VoucherType.FormatVoucherNo(m.VoucherSeq)

		if m.ReversalOfID != nil {
			var reversedBy *int64
			err := tx.QueryRow(ctx,
				`SELECT reversed_by_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`,
				*m.ReversalOfID,
			).Scan(&reversedBy)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrNotFound
				}
				return apperrors.NewAppError(500, "failed to lock original entry", err)
			}
			if reversedBy != nil {
				return fmt.Errorf("%w: entry %d is already reversed", apperrors.ErrBusinessRule, *m.ReversalOfID)
			}
		}

		insertEntry := `
			INSERT INTO journal_entries (voucher_no, voucher_seq, voucher_type, entry_date, narration, status,
				reversal_of_id, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING entry_id;
		`
		err := tx.QueryRow(ctx, insertEntry,
			m.VoucherNo, m.VoucherSeq, m.VoucherType, m.EntryDate, m.Narration, m.Status,
			m.ReversalOfID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		).Scan(&m.EntryID)
		if err != nil {
			switch code, constraint := pgErrorCode(err); {
			case code == pgUniqueViolation && constraint == reversalOfConstraint:
				return fmt.Errorf("%w: entry %d is already reversed", apperrors.ErrBusinessRule, *m.ReversalOfID)
			case code == pgUniqueViolation:
				return fmt.Errorf("%w: voucher number %s already issued", apperrors.ErrConflict, m.VoucherNo)
			}
			return apperrors.NewAppError(500, "failed to insert journal entry", err)
		}

		batch := &pgx.Batch{}
		insertLine := `
			INSERT INTO journal_lines (entry_id, line_no, account_id, debit, credit, memo)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING line_id;
		`
		for i := range lines {
			lines[i].EntryID = m.EntryID
			l := lines[i]
			batch.Queue(insertLine, l.EntryID, l.LineNo, l.AccountID, l.Debit, l.Credit, l.Memo)
		}
		br := tx.SendBatch(ctx, batch)
		for i := range lines {
			if err := br.QueryRow().Scan(&lines[i].LineID); err != nil {
				_ = br.Close()
				return apperrors.NewAppError(500, "failed to insert journal line "+strconv.Itoa(lines[i].LineNo), err)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close journal line batch", err)
		}

		if m.ReversalOfID != nil {
			_, err := tx.Exec(ctx,
				`UPDATE journal_entries SET reversed_by_id = $1, last_updated_at = $2, last_updated_by = $3 WHERE entry_id = $4;`,
				m.EntryID, m.LastUpdatedAt, m.LastUpdatedBy, *m.ReversalOfID,
			)
			if err != nil {
				return apperrors.NewAppError(500, "failed to link reversed entry", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved := mapping.ToDomainJournalEntry(m)
	saved.Lines = make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		saved.Lines[i] = mapping.ToDomainJournalLine(l)
		saved.Lines[i].AccountCode = entry.Lines[i].AccountCode
	}
	return &saved, nil
}

// lockPostingAccounts takes a share lock on every account the lines reference and
// re-checks that each still exists and is a posting account. The lock is held to
// commit, so a concurrent UpdateAccount (FOR UPDATE) cannot turn one of them into
// a grouping account while the lines are written.
func lockPostingAccounts(ctx context.Context, tx pgx.Tx, lines []models.JournalLine) error {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	rows, err := tx.Query(ctx,
		`SELECT account_id, code, is_posting FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR SHARE;`,
		ids,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock line accounts", err)
	}
	type lockedAccount struct {
		code      string
		isPosting bool
	}
	locked := make(map[int64]lockedAccount, len(ids))
	for rows.Next() {
		var id int64
		var acc lockedAccount
		if err := rows.Scan(&id, &acc.code, &acc.isPosting); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan line account", err)
		}
		locked[id] = acc
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed to lock line accounts", err)
	}

	for i, l := range lines {
		acc, ok := locked[l.AccountID]
		if !ok {
			return &apperrors.AccountNotFoundError{AccountID: l.AccountID}
		}
		if !acc.isPosting {
			return &apperrors.NonPostingAccountError{LineIndex: i, AccountCode: acc.code}
		}
	}
	return nil
}

// ResyncVoucherSequence lifts the counter of voucherType to the highest voucher
// sequence stored for that type. It runs outside any posting transaction.
func (r *PgxJournalRepository) ResyncVoucherSequence(ctx context.Context, voucherType domain.VoucherType) error {
	query := `
		INSERT INTO voucher_sequences (voucher_type, last_value)
		VALUES ($1, (SELECT COALESCE(MAX(voucher_seq), 0) FROM journal_entries WHERE voucher_type = $1))
		ON CONFLICT (voucher_type) DO UPDATE SET last_value = GREATEST(voucher_sequences.last_value, EXCLUDED.last_value);
	`
	if _, err := r.Pool.Exec(ctx, query, string(voucherType)); err != nil {
		return apperrors.NewAppError(500, "failed to resync voucher sequence", err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its id.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+strconv.FormatInt(entryID, 10), err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// ListEntries retrieves a page of entry headers newest first and the token for
// the following page, if any.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	var conds []string
	var args []any
	if filter.VoucherType != "" {
		args = append(args, string(filter.VoucherType))
		conds = append(conds, "voucher_type = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, "entry_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, "entry_date <= $"+strconv.Itoa(len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeEntryToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastDate, lastID)
		conds = append(conds, fmt.Sprintf("(entry_date, entry_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY entry_date DESC, entry_id DESC LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[limit-1]
		token := pagination.EncodeEntryToken(last.EntryDate, last.EntryID)
		nextTokenVal = &token
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

const lineQuery = `
	SELECT l.line_id, l.entry_id, l.line_no, l.account_id, a.code, l.debit, l.credit, l.memo
	FROM journal_lines l
	JOIN accounts a ON a.account_id = l.account_id
`

func scanLines(rows pgx.Rows) ([]models.JournalLine, error) {
	defer rows.Close()
	var lines []models.JournalLine
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.LineNo, &l.AccountID, &l.AccountCode, &l.Debit, &l.Credit, &l.Memo); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return lines, nil
}

// FindLinesByEntryID retrieves the lines of one entry in line order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, lineQuery+` WHERE l.entry_id = $1 ORDER BY l.line_no;`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	lines, err := scanLines(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves the lines of several entries grouped by entry id.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []int64) (map[int64][]domain.JournalLine, error) {
	result := make(map[int64][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, lineQuery+` WHERE l.entry_id = ANY($1) ORDER BY l.entry_id, l.line_no;`, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	lines, err := scanLines(rows)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		result[l.EntryID] = append(result[l.EntryID], mapping.ToDomainJournalLine(l))
	}
	return result, nil
}

// ListLedgerLines retrieves every posted line of an account in posting order.
func (r *PgxJournalRepository) ListLedgerLines(ctx context.Context, accountID int64) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, l.line_id, e.voucher_no, e.voucher_type, e.entry_date, e.narration, l.memo, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.status = $2
		ORDER BY e.entry_date, e.entry_id, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, string(domain.Posted))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines", err)
	}
	defer rows.Close()

	ledger := []domain.LedgerLine{}
	for rows.Next() {
		var m models.LedgerLine
		if err := rows.Scan(&m.EntryID, &m.LineID, &m.VoucherNo, &m.VoucherType, &m.EntryDate, &m.Narration, &m.Memo, &m.Debit, &m.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line", err)
		}
		ledger = append(ledger, mapping.ToDomainLedgerLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}
	return ledger, nil
}
