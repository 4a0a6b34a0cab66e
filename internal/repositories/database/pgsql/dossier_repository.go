package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDossierRepository struct {
	BaseRepository
}

func newPgxDossierRepository(pool *pgxpool.Pool) portsrepo.DossierRepositoryFacade {
	return &PgxDossierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DossierRepositoryFacade = (*PgxDossierRepository)(nil)

// GetDossier reads the single dossier row.
func (r *PgxDossierRepository) GetDossier(ctx context.Context) (*domain.Dossier, error) {
	query := `
		SELECT exe_begin, exe_end, last_settlement, last_concil,
			created_at, created_by, last_updated_at, last_updated_by
		FROM dossier WHERE id = 1;
	`
	var m models.Dossier
	err := r.Pool.QueryRow(ctx, query).Scan(&m.ExeBegin, &m.ExeEnd, &m.LastSettlement, &m.LastConcil,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return nil, notFound(err, "dossier")
	}
	dossier := mapping.ToDomainDossier(m)
	return &dossier, nil
}

// SaveExercise records the bounds of the current exercise.
func (r *PgxDossierRepository) SaveExercise(ctx context.Context, begin, end *time.Time, userID string) error {
	query := `
		UPDATE dossier SET exe_begin = $1, exe_end = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE id = 1;
	`
	if _, err := r.Pool.Exec(ctx, query, begin, end, userID); err != nil {
		return fmt.Errorf("failed to save exercise: %w", err)
	}
	return nil
}

// NextSettlementID increments and returns the settlement counter.
func (r *PgxDossierRepository) NextSettlementID(ctx context.Context) (int64, error) {
	return r.next(ctx, "last_settlement")
}

// NextConcilID increments and returns the reconciliation counter.
func (r *PgxDossierRepository) NextConcilID(ctx context.Context) (int64, error) {
	return r.next(ctx, "last_concil")
}

// next bumps a counter in a single statement; the row lock serializes callers.
func (r *PgxDossierRepository) next(ctx context.Context, column string) (int64, error) {
	query := fmt.Sprintf(`UPDATE dossier SET %[1]s = %[1]s + 1 WHERE id = 1 RETURNING %[1]s;`, column)
	var id int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&id); err != nil {
		return 0, notFound(err, "dossier counter %s", column)
	}
	return id, nil
}
