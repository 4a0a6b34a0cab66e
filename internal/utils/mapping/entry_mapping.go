package mapping

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		Number:           d.Number,
		DOpe:             domain.DateOnly(d.DOpe),
		DEffect:          domain.DateOnly(d.DEffect),
		Label:            d.Label,
		Ref:              d.Ref,
		Notes:            d.Notes,
		Ledger:           d.Ledger,
		Account:          d.Account,
		Currency:         d.Currency,
		Debit:            d.Debit,
		Credit:           d.Credit,
		Status:           d.Status.String(),
		Period:           d.Period.String(),
		OpeTemplate:      d.OpeTemplate,
		OpeNumber:        d.OpeNumber,
		SettlementNumber: d.SettlementNumber,
		SettlementUser:   d.SettlementUser,
		SettlementStamp:  d.SettlementStamp,
		ConcilID:         d.ConcilID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry. It fails on a
// status or period name it does not know.
func ToDomainEntry(m models.Entry) (domain.Entry, error) {
	status, err := domain.ParseEntryStatus(m.Status)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %d: %w", m.Number, err)
	}
	period, err := domain.ParseEntryPeriod(m.Period)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %d: %w", m.Number, err)
	}
	return domain.Entry{
		Number:           m.Number,
		DOpe:             domain.DateOnly(m.DOpe),
		DEffect:          domain.DateOnly(m.DEffect),
		Label:            m.Label,
		Ref:              m.Ref,
		Notes:            m.Notes,
		Ledger:           m.Ledger,
		Account:          m.Account,
		Currency:         m.Currency,
		Debit:            m.Debit,
		Credit:           m.Credit,
		Status:           status,
		Period:           period,
		OpeTemplate:      m.OpeTemplate,
		OpeNumber:        m.OpeNumber,
		SettlementNumber: m.SettlementNumber,
		SettlementUser:   m.SettlementUser,
		SettlementStamp:  m.SettlementStamp,
		ConcilID:         m.ConcilID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) ([]domain.Entry, error) {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		d, err := ToDomainEntry(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
