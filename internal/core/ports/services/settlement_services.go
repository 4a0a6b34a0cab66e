package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// SettleOptions tunes a settlement.
type SettleOptions struct {
	// Force settles an unbalanced selection without asking.
	Force bool
}

// UnbalancedSelectionError is returned when a settlement is refused because
// the selection does not balance. It wraps domain.ErrSettlementUnbalanced.
type UnbalancedSelectionError struct {
	Balances []domain.CurrencyBalance
}

func (e *UnbalancedSelectionError) Error() string {
	return domain.ErrSettlementUnbalanced.Error()
}

func (e *UnbalancedSelectionError) Unwrap() error {
	return domain.ErrSettlementUnbalanced
}

// SettlementSvc groups entries into settlement groups.
type SettlementSvc interface {
	// Settle allocates one settlement number and applies it to every selected
	// entry, including ones already settled elsewhere.
	Settle(ctx context.Context, numbers []int64, opts SettleOptions, userID string) (int64, *domain.BulkResult, error)

	// Unsettle clears the settlement number of every selected entry.
	Unsettle(ctx context.Context, numbers []int64, userID string) (*domain.BulkResult, error)
}
