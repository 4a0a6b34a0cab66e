package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		Number:             d.Number,
		Label:              d.Label,
		Currency:           d.Currency,
		IsRoot:             d.IsRoot,
		CurrentRoughDebit:  d.CurrentRoughDebit,
		CurrentRoughCredit: d.CurrentRoughCredit,
		FutureRoughDebit:   d.FutureRoughDebit,
		FutureRoughCredit:  d.FutureRoughCredit,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		Number:             m.Number,
		Label:              m.Label,
		Currency:           m.Currency,
		IsRoot:             m.IsRoot,
		CurrentRoughDebit:  m.CurrentRoughDebit,
		CurrentRoughCredit: m.CurrentRoughCredit,
		FutureRoughDebit:   m.FutureRoughDebit,
		FutureRoughCredit:  m.FutureRoughCredit,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
