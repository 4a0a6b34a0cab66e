package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerBalance holds the rough running totals of a ledger for one currency.
type LedgerBalance struct {
	Currency           string          `json:"currency"`
	CurrentRoughDebit  decimal.Decimal `json:"currentRoughDebit"`
	CurrentRoughCredit decimal.Decimal `json:"currentRoughCredit"`
	FutureRoughDebit   decimal.Decimal `json:"futureRoughDebit"`
	FutureRoughCredit  decimal.Decimal `json:"futureRoughCredit"`
}

// RoughAmounts returns the debit/credit bucket pair matching the period.
func (b *LedgerBalance) RoughAmounts(period EntryPeriod) (debit, credit *decimal.Decimal, ok bool) {
	switch period {
	case PeriodCurrent:
		return &b.CurrentRoughDebit, &b.CurrentRoughCredit, true
	case PeriodFuture:
		return &b.FutureRoughDebit, &b.FutureRoughCredit, true
	}
	return nil, nil, false
}

// Ledger is a journal entries are posted into. A ledger may receive entries in
// several currencies, so its totals are kept per currency.
type Ledger struct {
	Mnemo     string                    `json:"mnemo"`
	Label     string                    `json:"label"`
	LastClose *time.Time                `json:"lastClose"`
	Balances  map[string]*LedgerBalance `json:"balances"`
	AuditFields
}

// Balance returns the totals for the currency, creating an empty bucket on first use.
func (l *Ledger) Balance(currency string) *LedgerBalance {
	if l.Balances == nil {
		l.Balances = make(map[string]*LedgerBalance)
	}
	b, ok := l.Balances[currency]
	if !ok {
		b = &LedgerBalance{Currency: currency}
		l.Balances[currency] = b
	}
	return b
}
