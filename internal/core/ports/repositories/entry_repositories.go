package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// EntryReader defines read operations for entries.
type EntryReader interface {
	// FindByNumber returns apperrors.ErrNotFound when no entry has this number.
	FindByNumber(ctx context.Context, number int64) (*domain.Entry, error)

	// List returns the entries matching the query, ordered by effect date then number.
	List(ctx context.Context, query EntryQuery) ([]domain.Entry, error)
}

// EntryWriter defines write operations for entries.
type EntryWriter interface {
	// Insert persists a new entry and sets its allocated number.
	Insert(ctx context.Context, entry *domain.Entry) error

	// Update rewrites every editable column of an existing entry.
	Update(ctx context.Context, entry domain.Entry) error

	// Delete marks the entry as deleted; the row is kept.
	Delete(ctx context.Context, number int64, userID string, now time.Time) error

	// UpdateSettlement sets the settlement number of one entry, recording who and when.
	// domain.SettlementClear unsettles the entry: storage keeps 0 and clears user and stamp.
	// A deleted entry is never written and yields apperrors.ErrNotFound.
	UpdateSettlement(ctx context.Context, number int64, settlementNumber int64, userID string, now time.Time) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
