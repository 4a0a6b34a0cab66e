package domain

import (
	"github.com/shopspring/decimal"
)

// Account is an account of the chart, identified by its number.
// It holds the denormalized rough running totals maintained on every entry edit.
type Account struct {
	Number   string `json:"number"`
	Label    string `json:"label"`
	Currency string `json:"currency"` // declared currency, every entry must use it
	IsRoot   bool   `json:"isRoot"`   // root accounts only group children and cannot receive entries

	CurrentRoughDebit  decimal.Decimal `json:"currentRoughDebit"`
	CurrentRoughCredit decimal.Decimal `json:"currentRoughCredit"`
	FutureRoughDebit   decimal.Decimal `json:"futureRoughDebit"`
	FutureRoughCredit  decimal.Decimal `json:"futureRoughCredit"`
	AuditFields
}

// RoughAmounts returns the debit/credit bucket pair matching the period.
// Only the current and future periods carry rough totals.
func (a *Account) RoughAmounts(period EntryPeriod) (debit, credit *decimal.Decimal, ok bool) {
	switch period {
	case PeriodCurrent:
		return &a.CurrentRoughDebit, &a.CurrentRoughCredit, true
	case PeriodFuture:
		return &a.FutureRoughDebit, &a.FutureRoughCredit, true
	}
	return nil, nil, false
}

// ResetRoughAmounts zeroes every rough total.
func (a *Account) ResetRoughAmounts() {
	a.CurrentRoughDebit = decimal.Zero
	a.CurrentRoughCredit = decimal.Zero
	a.FutureRoughDebit = decimal.Zero
	a.FutureRoughCredit = decimal.Zero
}
