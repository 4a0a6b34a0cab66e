package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table with its denormalized rough totals.
type Account struct {
	Number             string          `db:"number"`
	Label              string          `db:"label"`
	Currency           string          `db:"currency"`
	IsRoot             bool            `db:"is_root"`
	CurrentRoughDebit  decimal.Decimal `db:"current_rough_debit"`
	CurrentRoughCredit decimal.Decimal `db:"current_rough_credit"`
	FutureRoughDebit   decimal.Decimal `db:"future_rough_debit"`
	FutureRoughCredit  decimal.Decimal `db:"future_rough_credit"`
	AuditFields
}
