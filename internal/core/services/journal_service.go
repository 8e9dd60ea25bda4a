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
	"github.com/SscSPs/textile_erp/internal/platform/metrics"
	"github.com/SscSPs/textile_erp/internal/utils/accounting"
	"github.com/SscSPs/textile_erp/internal/utils/pagination"
)

// maxPostingAttempts is the first try plus one retry after a voucher number collision.
const maxPostingAttempts = 2

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	precision   portssvc.PrecisionProvider
	fiscalYears portsrepo.FiscalYearReader
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithFiscalYearReader enables the locked fiscal year check on posting
func WithFiscalYearReader(reader portsrepo.FiscalYearReader) JournalServiceOption {
	return func(s *journalService) {
		s.fiscalYears = reader
	}
}

// NewJournalService creates a new journal service
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	precision portssvc.PrecisionProvider,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		precision:   precision,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and posts a new journal entry.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	voucherType := req.VoucherType
	if voucherType == "" {
		voucherType = domain.ManualJournal
	}

	entry, err := s.buildEntry(ctx, req, voucherType, userID)
	if err != nil {
		metrics.JournalPostings.WithLabelValues(string(voucherType), metrics.OutcomeRejected).Inc()
		s.LogFailure(ctx, err, "Journal entry rejected", slog.String("voucher_type", string(voucherType)))
		return nil, err
	}

	saved, err := s.post(ctx, *entry)
	if err != nil {
		return nil, err
	}
	metrics.JournalPostings.WithLabelValues(string(voucherType), metrics.OutcomePosted).Inc()

	s.LogInfo(ctx, "Journal entry posted",
		slog.Int64("entry_id", saved.EntryID),
		slog.String("voucher_no", saved.VoucherNo),
		slog.Int("lines", len(saved.Lines)))
	return saved, nil
}

// buildEntry runs every pre-persistence check and returns the entry ready to post.
func (s *journalService) buildEntry(ctx context.Context, req dto.CreateJournalEntryRequest, voucherType domain.VoucherType, userID string) (*domain.JournalEntry, error) {
	if !voucherType.IsValid() {
		return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, voucherType)
	}
	entryDate, err := dto.ParseDate("entryDate", req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if len(req.Lines) < 2 {
		return nil, &apperrors.InsufficientLinesError{Count: len(req.Lines)}
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	ids := make([]int64, 0, len(req.Lines))
	seen := make(map[int64]bool, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      strings.TrimSpace(l.Memo),
		}
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	precision, err := s.precision.GetPrecision(ctx)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		VoucherType: voucherType,
		EntryDate:   entryDate,
		Narration:   strings.TrimSpace(req.Narration),
		Status:      domain.Draft,
		Lines:       lines,
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	}

	validated, err := accounting.ValidateEntryLines(entry.Lines, accounts, precision)
	if err != nil {
		return nil, err
	}
	if err := s.checkFiscalYear(ctx, entryDate); err != nil {
		return nil, err
	}
	entry.Lines = validated
	entry.Status = domain.Validated
	return entry, nil
}

// post persists the entry, retrying once when the voucher number allocation collides.
func (s *journalService) post(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	voucherType := string(entry.VoucherType)
	var lastErr error
	for attempt := 1; attempt <= maxPostingAttempts; attempt++ {
		saved, err := s.journalRepo.SaveEntry(ctx, entry)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			outcome := metrics.OutcomeFailed
			if isExpected(err) {
				outcome = metrics.OutcomeRejected
			}
			metrics.JournalPostings.WithLabelValues(voucherType, outcome).Inc()
			s.LogFailure(ctx, err, "Failed to persist journal entry", slog.String("voucher_type", voucherType))
			return nil, err
		}

		lastErr = err
		metrics.JournalPostings.WithLabelValues(voucherType, metrics.OutcomeConflicts).Inc()
		if attempt < maxPostingAttempts {
			// The failed transaction rolled its counter increment back, so the
			// counter is lifted past the issued numbers before trying again.
			if err := s.journalRepo.ResyncVoucherSequence(ctx, entry.VoucherType); err != nil {
				metrics.JournalPostings.WithLabelValues(voucherType, metrics.OutcomeFailed).Inc()
				s.LogError(ctx, err, "Failed to resync voucher sequence", slog.String("voucher_type", voucherType))
				return nil, &apperrors.PostingFailedError{Attempts: attempt, Err: err}
			}
			metrics.VoucherRetries.WithLabelValues(voucherType).Inc()
			s.GetLogger(ctx).Warn("Voucher number collision, retrying",
				slog.String("voucher_type", voucherType),
				slog.Int("attempt", attempt))
		}
	}

	metrics.JournalPostings.WithLabelValues(voucherType, metrics.OutcomeFailed).Inc()
	failure := &apperrors.PostingFailedError{Attempts: maxPostingAttempts, Err: lastErr}
	s.LogError(ctx, failure, "Journal entry could not be posted", slog.String("voucher_type", voucherType))
	return nil, failure
}

func (s *journalService) checkFiscalYear(ctx context.Context, date time.Time) error {
	if s.fiscalYears == nil {
		return nil
	}
	fy, err := s.fiscalYears.FindFiscalYearByDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if fy.IsLocked {
		return &apperrors.FiscalYearLockedError{Name: fy.Name}
	}
	return nil
}

// GetEntryByID returns the entry with its lines in line order.
func (s *journalService) GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal entry %d", apperrors.ErrNotFound, entryID)
		}
		s.LogError(ctx, err, "Failed to find journal entry", slog.Int64("entry_id", entryID))
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.Int64("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// GetEntries lists entries newest first, one page at a time.
func (s *journalService) GetEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	from, err := dto.ParseOptionalDate("from", params.From)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	to, err := dto.ParseOptionalDate("to", params.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: to must not be before from", apperrors.ErrValidation)
	}

	filter := domain.EntryFilter{
		VoucherType:  domain.VoucherType(params.VoucherType),
		From:         from,
		To:           to,
		Limit:        params.Limit,
		IncludeLines: params.IncludeLines,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.NextToken != "" {
		if _, _, err := pagination.DecodeEntryToken(params.NextToken); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		token := params.NextToken
		filter.NextToken = &token
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}

	if filter.IncludeLines && len(entries) > 0 {
		ids := make([]int64, len(entries))
		for i, e := range entries {
			ids[i] = e.EntryID
		}
		linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to load journal lines for listing")
			return nil, err
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ReverseEntry posts a new entry that mirrors the original with debit and credit swapped.
func (s *journalService) ReverseEntry(ctx context.Context, entryID int64, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	original, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.ReversalOfID != nil {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrBusinessRule, original.VoucherNo)
	}
	if original.ReversedByID != nil {
		return nil, fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrBusinessRule, original.VoucherNo)
	}

	entryDate := original.EntryDate
	if req.EntryDate != "" {
		entryDate, err = dto.ParseDate("entryDate", req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	if err := s.checkFiscalYear(ctx, entryDate); err != nil {
		s.LogFailure(ctx, err, "Reversal rejected", slog.Int64("entry_id", entryID))
		return nil, err
	}

	narration := strings.TrimSpace(req.Narration)
	if narration == "" {
		narration = "Reversal of " + original.VoucherNo
	}
	originalID := original.EntryID
	reversal := domain.JournalEntry{
		VoucherType:  original.VoucherType,
		EntryDate:    entryDate,
		Narration:    narration,
		Status:       domain.Validated,
		ReversalOfID: &originalID,
		Lines:        accounting.ReverseLines(original.Lines),
		AuditFields:  domain.NewAuditFields(userID, time.Now().UTC()),
	}

	saved, err := s.post(ctx, reversal)
	if err != nil {
		return nil, err
	}
	metrics.JournalPostings.WithLabelValues(string(saved.VoucherType), metrics.OutcomeReversed).Inc()

	s.LogInfo(ctx, "Journal entry reversed",
		slog.Int64("entry_id", entryID),
		slog.Int64("reversal_id", saved.EntryID),
		slog.String("voucher_no", saved.VoucherNo))
	return saved, nil
}
