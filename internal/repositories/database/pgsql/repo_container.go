package pgsql

import (
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
		FiscalYearRepo: newPgxFiscalYearRepository(dbPool),
		SettingsRepo:   newPgxSettingsRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
