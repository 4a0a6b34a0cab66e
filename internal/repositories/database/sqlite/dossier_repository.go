package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
)

type dossierRepository struct {
	*Store
}

var _ portsrepo.DossierRepositoryFacade = (*dossierRepository)(nil)

func (r *dossierRepository) GetDossier(ctx context.Context) (*domain.Dossier, error) {
	var (
		m          models.Dossier
		begin, end sql.NullString
		audit      auditText
	)
	row := r.reader.QueryRowContext(ctx,
		`SELECT exe_begin, exe_end, last_settlement, last_concil,
			created_at, created_by, last_updated_at, last_updated_by
		 FROM dossier WHERE id = 1`)
	if err := row.Scan(append([]any{&begin, &end, &m.LastSettlement, &m.LastConcil}, audit.dest()...)...); err != nil {
		return nil, notFound(err, "dossier")
	}

	var err error
	if m.ExeBegin, err = parseNullDate(begin); err != nil {
		return nil, err
	}
	if m.ExeEnd, err = parseNullDate(end); err != nil {
		return nil, err
	}
	if m.AuditFields, err = audit.fields(); err != nil {
		return nil, err
	}
	d := mapping.ToDomainDossier(m)
	return &d, nil
}

func (r *dossierRepository) SaveExercise(ctx context.Context, begin, end *time.Time, userID string) error {
	_, err := r.writer.ExecContext(ctx,
		`UPDATE dossier SET exe_begin = ?, exe_end = ?, last_updated_at = ?, last_updated_by = ? WHERE id = 1`,
		formatNullDate(begin), formatNullDate(end), formatStamp(time.Now()), userID)
	if err != nil {
		return fmt.Errorf("save exercise: %w", err)
	}
	return nil
}

func (r *dossierRepository) NextSettlementID(ctx context.Context) (int64, error) {
	return r.next(ctx, "last_settlement")
}

func (r *dossierRepository) NextConcilID(ctx context.Context) (int64, error) {
	return r.next(ctx, "last_concil")
}

// next bumps a counter; the single writer connection serializes callers.
func (r *dossierRepository) next(ctx context.Context, column string) (int64, error) {
	query := fmt.Sprintf(`UPDATE dossier SET %[1]s = %[1]s + 1 WHERE id = 1 RETURNING %[1]s`, column)
	var id int64
	if err := r.writer.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, notFound(err, "dossier counter %s", column)
	}
	return id, nil
}
