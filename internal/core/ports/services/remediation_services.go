package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RemediationSvc keeps the account and ledger rough totals in line with entry edits.
type RemediationSvc interface {
	// RemediateAccount moves the entry amounts from its previous account bucket
	// to its current one. Nothing is read or written when nothing changed.
	RemediateAccount(ctx context.Context, entry *domain.Entry, prevAccount string, prevDebit, prevCredit decimal.Decimal) error

	// RemediateLedger does the same on the ledger totals of the entry currency.
	RemediateLedger(ctx context.Context, entry *domain.Entry, prevLedger string, prevDebit, prevCredit decimal.Decimal) error

	// RecomputeRoughTotals rebuilds every rough total from the rough entries.
	RecomputeRoughTotals(ctx context.Context) error
}
