package repositories

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, most recent first, using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error)
}

// JournalLineReader defines read operations for journal lines
type JournalLineReader interface {
	// FindLinesByEntryID retrieves the lines of one entry ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []int64) (map[int64][]domain.JournalLine, error)

	// ListLedgerLines retrieves every line posted to an account in posting order
	// (entry date, entry id, line id).
	ListLedgerLines(ctx context.Context, accountID int64) ([]domain.LedgerLine, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry allocates the next voucher number for the entry's voucher type and inserts
	// the entry and its lines in one database transaction. When ReversalOfID is set the
	// original entry is linked to the new one in the same transaction.
	// A voucher number collision is reported as apperrors.ErrConflict.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// ResyncVoucherSequence raises the voucher counter of a type to at least the highest
	// number already issued. It commits on its own so a later SaveEntry allocates a fresh
	// number even though the failed attempt's increment was rolled back.
	ResyncVoucherSequence(ctx context.Context, voucherType domain.VoucherType) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalLineReader
	JournalWriter
}
