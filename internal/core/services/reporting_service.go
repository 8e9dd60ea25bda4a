package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountReader
	precision     portssvc.PrecisionProvider
}

// NewReportingService creates a new reporting service
func NewReportingService(
	repo portsrepo.ReportingRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	precision portssvc.PrecisionProvider,
) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
		precision:     precision,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance over every posting account, optionally for one
// segment and as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, segment string, asOf *time.Time) (*domain.TrialBalance, error) {
	filter := domain.AccountFilter{PostingOnly: true}
	if strings.TrimSpace(segment) != "" {
		filter.Segment = domain.NormalizeSegment(segment)
	}

	precision, err := s.precision.GetPrecision(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for trial balance")
		return nil, fmt.Errorf("failed to list accounts for trial balance: %w", err)
	}
	totals, err := s.reportingRepo.ListAccountTotals(ctx, filter, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("segment", filter.Segment))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalance{
		Segment:     filter.Segment,
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range accounts {
		t := totals[acc.AccountID]
		net := accounting.SignedAmount(acc.NormalBalance, t.TotalDebit, t.TotalCredit)
		debit, credit := accounting.TrialBalanceColumns(acc.NormalBalance, precision.RoundAmount(net))

		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}
	report.IsBalanced = report.TotalDebit.Sub(report.TotalCredit).Abs().LessThanOrEqual(precision.Epsilon())

	if !report.IsBalanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("segment", filter.Segment),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}
	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("segment", filter.Segment),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}
