package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/filter"
)

// EntryValidatorSvc checks an edited row field by field.
// Each check returns whether its field is individually valid and may write a
// message or a computed default into the row.
type EntryValidatorSvc interface {
	// CheckRowValid runs every check in a fixed order; the last problem found
	// is the one left in the row error.
	CheckRowValid(ctx context.Context, row *domain.EntryRow) bool

	// SetDefaultEffect writes the minimal allowed effect date into a row whose
	// effect date was not set by the user. It reports whether a value was written.
	SetDefaultEffect(ctx context.Context, row *domain.EntryRow) bool

	CheckAmounts(ctx context.Context, row *domain.EntryRow) bool
	CheckLabel(ctx context.Context, row *domain.EntryRow) bool
	CheckAccount(ctx context.Context, row *domain.EntryRow) bool
	CheckCurrency(ctx context.Context, row *domain.EntryRow) bool
	CheckCrossCurrency(ctx context.Context, row *domain.EntryRow) bool
	CheckLedger(ctx context.Context, row *domain.EntryRow) bool
	CheckEffectDate(ctx context.Context, row *domain.EntryRow) bool
	CheckOperationDate(ctx context.Context, row *domain.EntryRow) bool
	CheckCrossEffectDate(ctx context.Context, row *domain.EntryRow) bool
}

// EntryReaderSvc defines read operations on entries.
type EntryReaderSvc interface {
	GetEntry(ctx context.Context, number int64) (*domain.Entry, error)

	// GetRow returns the entry as an editable row.
	GetRow(ctx context.Context, number int64) (*domain.EntryRow, error)

	// ListEntries returns the entries visible under the view and their balances.
	ListEntries(ctx context.Context, view filter.View) ([]domain.Entry, *domain.BalanceSet, error)

	// ComputeRowBalances returns the balances of rows being edited.
	ComputeRowBalances(ctx context.Context, rows []domain.EntryRow) (*domain.BalanceSet, error)
}

// EntryWriterSvc defines the edit cycle of entries.
type EntryWriterSvc interface {
	// NewRow returns a blank rough row, preset on the ledger when given.
	NewRow(ctx context.Context, ledger string) *domain.EntryRow

	// ValidateRow runs the validation on the row and returns it.
	ValidateRow(ctx context.Context, row *domain.EntryRow) *domain.EntryRow

	// CommitRow persists a valid row: a new row is inserted, an existing one is
	// updated then the account and ledger totals are remediated.
	CommitRow(ctx context.Context, row *domain.EntryRow, userID string) (*domain.Entry, error)

	// DeleteEntry soft-deletes a rough entry and takes it out of the totals.
	DeleteEntry(ctx context.Context, number int64, userID string) error
}

// EntrySvcFacade combines all entry service interfaces.
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
