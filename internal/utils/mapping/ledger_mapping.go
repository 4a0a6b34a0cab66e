package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelLedger converts a domain Ledger to a model Ledger; balances are
// mapped separately with ToModelLedgerBalance.
func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		Mnemo:       d.Mnemo,
		Label:       d.Label,
		LastClose:   d.LastClose,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToModelLedgerBalance converts the totals of one ledger currency.
func ToModelLedgerBalance(mnemo string, b *domain.LedgerBalance) models.LedgerBalance {
	return models.LedgerBalance{
		Mnemo:              mnemo,
		Currency:           b.Currency,
		CurrentRoughDebit:  b.CurrentRoughDebit,
		CurrentRoughCredit: b.CurrentRoughCredit,
		FutureRoughDebit:   b.FutureRoughDebit,
		FutureRoughCredit:  b.FutureRoughCredit,
	}
}

// ToDomainLedger rebuilds a domain Ledger from its row and its balance rows.
func ToDomainLedger(m models.Ledger, balances []models.LedgerBalance) domain.Ledger {
	d := domain.Ledger{
		Mnemo:       m.Mnemo,
		Label:       m.Label,
		LastClose:   m.LastClose,
		Balances:    make(map[string]*domain.LedgerBalance, len(balances)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for _, b := range balances {
		d.Balances[b.Currency] = &domain.LedgerBalance{
			Currency:           b.Currency,
			CurrentRoughDebit:  b.CurrentRoughDebit,
			CurrentRoughCredit: b.CurrentRoughCredit,
			FutureRoughDebit:   b.FutureRoughDebit,
			FutureRoughCredit:  b.FutureRoughCredit,
		}
	}
	return d
}
