package services

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the query parameters.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// GetAccountHierarchy returns the chart of accounts as a forest, optionally limited to a segment.
	GetAccountHierarchy(ctx context.Context, segment string) ([]domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount renames, reparents or changes the posting flag of an account.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account that has no journal lines and no children.
	DeleteAccount(ctx context.Context, accountID int64, userID string) error

	// SetupDefaultCOA seeds the five root accounts into a segment and returns the ones created.
	SetupDefaultCOA(ctx context.Context, segment string, userID string) ([]domain.Account, error)
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// GetAccountLedger returns every posted line of an account with running balances.
	GetAccountLedger(ctx context.Context, accountID int64) (*domain.AccountLedger, error)

	// GetAccountsWithBalance returns posting accounts of a type with their net balances.
	GetAccountsWithBalance(ctx context.Context, accountType domain.AccountType, segment string) ([]domain.AccountBalance, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
