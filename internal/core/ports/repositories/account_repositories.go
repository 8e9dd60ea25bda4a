package repositories

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a segment.
	FindAccountByCode(ctx context.Context, segment string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by segment then code.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountUsageReader answers whether an account is still referenced.
type AccountUsageReader interface {
	// CountChildAccounts returns the number of accounts whose parent is accountID.
	CountChildAccounts(ctx context.Context, accountID int64) (int, error)

	// CountJournalLines returns the number of journal lines posted to accountID.
	CountJournalLines(ctx context.Context, accountID int64) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and returns it with its generated ID.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccount updates name, parent and posting flag of an existing account. The
	// posting-flag usage checks are repeated under a row lock and fail with ErrBusinessRule.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account that nothing references.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountUsageReader
	AccountWriter
}
