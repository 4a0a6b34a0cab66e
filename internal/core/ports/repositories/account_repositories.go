package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber returns apperrors.ErrNotFound for an unknown account.
	FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error)

	// ListAccounts returns the whole chart ordered by number.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount creates or updates the account definition. Rough totals are
	// left untouched.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountAmounts persists the four rough totals of the account.
	UpdateAccountAmounts(ctx context.Context, account domain.Account) error

	// ResetRoughAmounts zeroes the rough totals of every account.
	ResetRoughAmounts(ctx context.Context) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
