package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	formats := NewFormatters(cfg)
	container := &portssvc.ServiceContainer{}

	container.Validator = NewEntryValidator(
		repos.AccountRepo,
		repos.CurrencyRepo,
		repos.LedgerRepo,
		repos.DossierRepo,
		WithValidatorFormatters(formats),
	)

	container.Remediation = NewRemediationService(repos.EntryRepo, repos.AccountRepo, repos.LedgerRepo)

	container.Entry = NewEntryService(
		repos.EntryRepo,
		repos.CurrencyRepo,
		repos.DossierRepo,
		container.Validator,
		container.Remediation,
		WithEntryFormatters(formats),
	)

	container.Settlement = NewSettlementService(
		repos.EntryRepo,
		repos.CurrencyRepo,
		repos.DossierRepo,
		WithUnbalancedWarning(cfg.SettlementWarnUnbalanced),
	)

	container.Concil = NewConcilService(repos.ConcilRepo, repos.EntryRepo, repos.DossierRepo)

	container.Book = NewBookService(repos.CurrencyRepo, repos.AccountRepo, repos.LedgerRepo, repos.DossierRepo)

	return container
}
