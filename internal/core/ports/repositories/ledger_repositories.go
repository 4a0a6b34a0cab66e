package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// LedgerReader defines read operations for ledgers.
type LedgerReader interface {
	// FindLedgerByMnemo returns the ledger with all its per-currency balances,
	// or apperrors.ErrNotFound.
	FindLedgerByMnemo(ctx context.Context, mnemo string) (*domain.Ledger, error)

	ListLedgers(ctx context.Context) ([]domain.Ledger, error)
}

// LedgerWriter defines write operations for ledgers.
type LedgerWriter interface {
	// SaveLedger creates or updates the ledger definition, not its balances.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error

	// UpdateLedgerBalance persists the totals of one currency of the ledger,
	// creating the balance row when needed.
	UpdateLedgerBalance(ctx context.Context, ledger domain.Ledger, currency string) error

	// ResetRoughBalances zeroes the rough totals of every ledger and currency.
	ResetRoughBalances(ctx context.Context) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
