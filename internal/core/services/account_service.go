package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/dto"
	"github.com/SscSPs/textile_erp/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// defaultRootAccounts is the skeleton seeded by SetupDefaultCOA.
var defaultRootAccounts = []struct {
	Code        string
	Name        string
	AccountType domain.AccountType
}{
	{"1000", "Assets", domain.Asset},
	{"2000", "Liabilities", domain.Liability},
	{"3000", "Equity", domain.Equity},
	{"4000", "Income", domain.Income},
	{"5000", "Expenses", domain.Expense},
}

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo    portsrepo.AccountRepositoryFacade
	ledgerReader   portsrepo.JournalLineReader
	totalsReader   portsrepo.ReportingRepositoryFacade
	defaultSegment string
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithLedgerReader adds the journal line reader used for account ledgers
func WithLedgerReader(reader portsrepo.JournalLineReader) AccountServiceOption {
	return func(s *accountService) {
		s.ledgerReader = reader
	}
}

// WithTotalsReader adds the aggregate reader used for account balances
func WithTotalsReader(reader portsrepo.ReportingRepositoryFacade) AccountServiceOption {
	return func(s *accountService) {
		s.totalsReader = reader
	}
}

// WithDefaultSegment overrides the segment used when a request carries none
func WithDefaultSegment(segment string) AccountServiceOption {
	return func(s *accountService) {
		s.defaultSegment = domain.NormalizeSegment(segment)
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:    repo,
		defaultSegment: domain.DefaultSegment,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) segmentOrDefault(segment string) string {
	if strings.TrimSpace(segment) == "" {
		return s.defaultSegment
	}
	return domain.NormalizeSegment(segment)
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	segment := s.segmentOrDefault(req.Segment)

	if req.ParentID == nil {
		if req.IsPosting {
			return nil, &apperrors.InvalidParentError{Reason: "a posting account must have a parent grouping account"}
		}
	} else {
		parent, err := s.findParent(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if err := validateParent(parent, req.AccountType, segment); err != nil {
			s.LogFailure(ctx, err, "Rejected parent for new account", slog.String("code", code))
			return nil, err
		}
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, segment, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", code), slog.String("segment", segment))
		return nil, err
	}
	if existing != nil {
		return nil, &apperrors.DuplicateCodeError{Code: code, Segment: segment}
	}

	account := domain.Account{
		Code:          code,
		Name:          name,
		AccountType:   req.AccountType,
		NormalBalance: req.AccountType.NormalBalance(),
		IsPosting:     req.IsPosting,
		ParentID:      req.ParentID,
		Segment:       segment,
		AuditFields:   domain.NewAuditFields(userID, time.Now().UTC()),
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save account", slog.String("code", code), slog.String("segment", segment))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", saved.AccountID),
		slog.String("code", saved.Code),
		slog.String("segment", saved.Segment))
	return saved, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.AccountNotFoundError{AccountID: accountID}
		}
		s.LogError(ctx, err, "Failed to find account by ID", slog.Int64("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := domain.AccountFilter{
		AccountType: domain.AccountType(params.AccountType),
		PostingOnly: params.PostingOnly,
	}
	if params.Segment != "" {
		filter.Segment = domain.NormalizeSegment(params.Segment)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}

	newParentID := account.ParentID
	if req.ClearParent {
		newParentID = nil
	} else if req.ParentID != nil {
		newParentID = req.ParentID
	}
	newPosting := account.IsPosting
	if req.IsPosting != nil {
		newPosting = *req.IsPosting
	}

	if newParentID != nil && !sameID(newParentID, account.ParentID) {
		if *newParentID == account.AccountID {
			return nil, &apperrors.InvalidParentError{ParentID: *newParentID, Reason: "an account cannot be its own parent"}
		}
		parent, err := s.findParent(ctx, *newParentID)
		if err != nil {
			return nil, err
		}
		if err := validateParent(parent, account.AccountType, account.Segment); err != nil {
			return nil, err
		}
		siblings, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{Segment: account.Segment})
		if err != nil {
			s.LogError(ctx, err, "Failed to load accounts for cycle check", slog.Int64("account_id", accountID))
			return nil, err
		}
		if accounting.WouldCreateCycle(siblings, account.AccountID, *newParentID) {
			return nil, &apperrors.InvalidParentError{ParentID: *newParentID, Reason: "the new parent is a descendant of the account"}
		}
	}
	if newPosting && newParentID == nil {
		return nil, &apperrors.InvalidParentError{Reason: "a posting account must have a parent grouping account"}
	}

	if account.IsPosting && !newPosting {
		lines, err := s.accountRepo.CountJournalLines(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if lines > 0 {
			return nil, fmt.Errorf("%w: account %s has %d posted line(s) and must stay a posting account", apperrors.ErrBusinessRule, account.Code, lines)
		}
	}
	if !account.IsPosting && newPosting {
		children, err := s.accountRepo.CountChildAccounts(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if children > 0 {
			return nil, fmt.Errorf("%w: account %s has %d child account(s) and cannot become a posting account", apperrors.ErrBusinessRule, account.Code, children)
		}
	}

	account.ParentID = newParentID
	account.IsPosting = newPosting
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.Int64("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64, userID string) error {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	lines, err := s.accountRepo.CountJournalLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count journal lines", slog.Int64("account_id", accountID))
		return err
	}
	if lines > 0 {
		return &apperrors.ReferenceExistsError{
			Resource: "account",
			ID:       account.Code,
			Reason:   fmt.Sprintf("%d journal line(s) are posted to it", lines),
		}
	}

	children, err := s.accountRepo.CountChildAccounts(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count child accounts", slog.Int64("account_id", accountID))
		return err
	}
	if children > 0 {
		return &apperrors.ReferenceExistsError{
			Resource: "account",
			ID:       account.Code,
			Reason:   fmt.Sprintf("%d child account(s) reference it", children),
		}
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogFailure(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID), slog.String("user_id", userID))
	return nil
}

func (s *accountService) GetAccountHierarchy(ctx context.Context, segment string) ([]domain.AccountNode, error) {
	filter := domain.AccountFilter{}
	if strings.TrimSpace(segment) != "" {
		filter.Segment = domain.NormalizeSegment(segment)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for hierarchy")
		return nil, err
	}

	forest, err := accounting.BuildHierarchy(accounts)
	if err != nil {
		s.LogError(ctx, err, "Account hierarchy is corrupt", slog.String("segment", filter.Segment))
		return nil, err
	}
	return forest, nil
}

func (s *accountService) GetAccountLedger(ctx context.Context, accountID int64) (*domain.AccountLedger, error) {
	if s.ledgerReader == nil {
		return nil, apperrors.NewAppError(500, "ledger reader not configured", nil)
	}
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	lines, err := s.ledgerReader.ListLedgerLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines", slog.Int64("account_id", accountID))
		return nil, err
	}

	rows, totalDebit, totalCredit, closing := accounting.BuildLedgerRows(account.NormalBalance, lines)
	return &domain.AccountLedger{
		Account:        *account,
		Rows:           rows,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		ClosingBalance: closing,
	}, nil
}

func (s *accountService) SetupDefaultCOA(ctx context.Context, segment string, userID string) ([]domain.Account, error) {
	seg := s.segmentOrDefault(segment)
	created := make([]domain.Account, 0, len(defaultRootAccounts))

	for _, root := range defaultRootAccounts {
		existing, err := s.accountRepo.FindAccountByCode(ctx, seg, root.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check default account", slog.String("code", root.Code))
			return nil, err
		}
		if existing != nil {
			continue
		}

		saved, err := s.accountRepo.SaveAccount(ctx, domain.Account{
			Code:          root.Code,
			Name:          root.Name,
			AccountType:   root.AccountType,
			NormalBalance: root.AccountType.NormalBalance(),
			IsPosting:     false,
			Segment:       seg,
			AuditFields:   domain.NewAuditFields(userID, time.Now().UTC()),
		})
		if err != nil {
			var dup *apperrors.DuplicateCodeError
			if errors.As(err, &dup) {
				// seeded concurrently
				continue
			}
			s.LogError(ctx, err, "Failed to seed default account", slog.String("code", root.Code))
			return nil, err
		}
		created = append(created, *saved)
	}

	s.LogInfo(ctx, "Default chart of accounts ensured", slog.String("segment", seg), slog.Int("created", len(created)))
	return created, nil
}

func (s *accountService) GetAccountsWithBalance(ctx context.Context, accountType domain.AccountType, segment string) ([]domain.AccountBalance, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	if s.totalsReader == nil {
		return nil, apperrors.NewAppError(500, "totals reader not configured", nil)
	}

	filter := domain.AccountFilter{AccountType: accountType, PostingOnly: true}
	if strings.TrimSpace(segment) != "" {
		filter.Segment = domain.NormalizeSegment(segment)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for balances")
		return nil, err
	}
	totals, err := s.totalsReader.ListAccountTotals(ctx, filter, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account totals")
		return nil, err
	}

	balances := make([]domain.AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		t, ok := totals[acc.AccountID]
		if !ok {
			t = domain.AccountTotals{AccountID: acc.AccountID, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
		}
		balances = append(balances, domain.AccountBalance{
			Account:     acc,
			TotalDebit:  t.TotalDebit,
			TotalCredit: t.TotalCredit,
			Balance:     accounting.SignedAmount(acc.NormalBalance, t.TotalDebit, t.TotalCredit),
		})
	}
	return balances, nil
}

func (s *accountService) findParent(ctx context.Context, parentID int64) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.InvalidParentError{ParentID: parentID, Reason: "parent account does not exist"}
		}
		s.LogError(ctx, err, "Failed to find parent account", slog.Int64("parent_id", parentID))
		return nil, err
	}
	return parent, nil
}

// validateParent checks that parent can hold a child of the given type in the given segment.
func validateParent(parent *domain.Account, accountType domain.AccountType, segment string) error {
	if parent.IsPosting {
		return &apperrors.InvalidParentError{ParentID: parent.AccountID, Reason: "parent must be a grouping (non-posting) account"}
	}
	if parent.AccountType != accountType {
		return &apperrors.InvalidParentError{
			ParentID: parent.AccountID,
			Reason:   fmt.Sprintf("parent is %s but the account is %s", parent.AccountType, accountType),
		}
	}
	if parent.Segment != segment {
		return &apperrors.InvalidParentError{
			ParentID: parent.AccountID,
			Reason:   "parent belongs to segment " + parent.Segment,
		}
	}
	return nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
