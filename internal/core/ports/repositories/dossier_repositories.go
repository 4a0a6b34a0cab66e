package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// DossierReader defines read operations on the dossier.
type DossierReader interface {
	GetDossier(ctx context.Context) (*domain.Dossier, error)
}

// IDAllocator hands out dossier-scoped, monotonic and durable identifiers.
type IDAllocator interface {
	NextSettlementID(ctx context.Context) (int64, error)
	NextConcilID(ctx context.Context) (int64, error)
}

// DossierWriter defines write operations on the dossier.
type DossierWriter interface {
	// SaveExercise records the bounds of the current exercise.
	SaveExercise(ctx context.Context, begin, end *time.Time, userID string) error
}

// DossierRepositoryFacade combines all dossier repository interfaces.
type DossierRepositoryFacade interface {
	DossierReader
	DossierWriter
	IDAllocator
}
