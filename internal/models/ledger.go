package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is a row of the ledgers table.
type Ledger struct {
	Mnemo     string     `db:"mnemo"`
	Label     string     `db:"label"`
	LastClose *time.Time `db:"last_close"` // Nullable
	AuditFields
}

// LedgerBalance is a row of the ledger_balances table: the rough totals of a
// ledger for one currency.
type LedgerBalance struct {
	Mnemo              string          `db:"mnemo"`
	Currency           string          `db:"currency"`
	CurrentRoughDebit  decimal.Decimal `db:"current_rough_debit"`
	CurrentRoughCredit decimal.Decimal `db:"current_rough_credit"`
	FutureRoughDebit   decimal.Decimal `db:"future_rough_debit"`
	FutureRoughCredit  decimal.Decimal `db:"future_rough_credit"`
}
