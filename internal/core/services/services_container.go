package services

import (
	portsrepo "github.com/SscSPs/textile_erp/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings is shared by the services below
	container.Settings = NewSettingsService(repos.SettingsRepo, cfg.DefaultPrecision)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithLedgerReader(repos.JournalRepo),
		WithTotalsReader(repos.ReportingRepo),
		WithDefaultSegment(cfg.DefaultSegment),
	)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		container.Settings,
		WithFiscalYearReader(repos.FiscalYearRepo),
	)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, container.Settings)
	container.FiscalYear = NewFiscalYearService(repos.FiscalYearRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, container.Settings)
	container.Audit = NewAuditService(repos.AuditRepo)

	return container
}
