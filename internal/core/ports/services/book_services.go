package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// BookSvc maintains the reference data entries point to: currencies, the
// chart of accounts, ledgers and the current exercise.
type BookSvc interface {
	SaveCurrency(ctx context.Context, currency domain.Currency, userID string) (*domain.Currency, error)
	SaveAccount(ctx context.Context, account domain.Account, userID string) (*domain.Account, error)
	SaveLedger(ctx context.Context, ledger domain.Ledger, userID string) (*domain.Ledger, error)

	// OpenExercise sets the exercise bounds used to classify entries into periods.
	OpenExercise(ctx context.Context, begin, end time.Time, userID string) (*domain.Dossier, error)

	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListLedgers(ctx context.Context) ([]domain.Ledger, error)
	GetDossier(ctx context.Context) (*domain.Dossier, error)
}
