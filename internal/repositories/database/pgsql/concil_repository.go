package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxConcilRepository struct {
	BaseRepository
}

func newPgxConcilRepository(pool *pgxpool.Pool) portsrepo.ConcilRepositoryFacade {
	return &PgxConcilRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ConcilRepositoryFacade = (*PgxConcilRepository)(nil)

// CreateGroup inserts the group header.
func (r *PgxConcilRepository) CreateGroup(ctx context.Context, group domain.ConcilGroup) error {
	m := mapping.ToModelConcilGroup(group)
	query := `INSERT INTO concil (id, dvalue, user_id, stamp) VALUES ($1, $2, $3, $4);`
	if _, err := r.Pool.Exec(ctx, query, m.ID, m.DValue, m.UserID, m.Stamp); err != nil {
		return fmt.Errorf("failed to create reconciliation group %d: %w", m.ID, err)
	}
	return nil
}

// AddMember tags the item and, for an entry, points it to the group.
func (r *PgxConcilRepository) AddMember(ctx context.Context, groupID int64, member domain.ConcilMember) error {
	m := mapping.ToModelConcilMember(groupID, member)
	return r.InTx(ctx, func(tx pgx.Tx) error {
		query := `INSERT INTO concil_ids (concil_id, type, other_id) VALUES ($1, $2, $3);`
		if _, err := tx.Exec(ctx, query, m.ConcilID, m.Type, m.OtherID); err != nil {
			return fmt.Errorf("failed to add %s %d to reconciliation group %d: %w", m.Type, m.OtherID, groupID, err)
		}
		if member.Type != domain.ConcilEntry {
			return nil
		}
		tag, err := tx.Exec(ctx, `UPDATE entries SET concil_id = $2 WHERE number = $1;`, m.OtherID, groupID)
		if err != nil {
			return fmt.Errorf("failed to reconcile entry %d: %w", m.OtherID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("entry %d: %w", m.OtherID, apperrors.ErrNotFound)
		}
		return nil
	})
}

// DeleteGroup drops the group and releases its member entries.
func (r *PgxConcilRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE entries SET concil_id = 0 WHERE concil_id = $1;`, groupID); err != nil {
			return fmt.Errorf("failed to release entries of reconciliation group %d: %w", groupID, err)
		}
		// concil_ids rows go with the header (ON DELETE CASCADE).
		tag, err := tx.Exec(ctx, `DELETE FROM concil WHERE id = $1;`, groupID)
		if err != nil {
			return fmt.Errorf("failed to delete reconciliation group %d: %w", groupID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("reconciliation group %d: %w", groupID, apperrors.ErrNotFound)
		}
		return nil
	})
}

// FindGroupByID retrieves the group with its members.
func (r *PgxConcilRepository) FindGroupByID(ctx context.Context, id int64) (*domain.ConcilGroup, error) {
	var m models.ConcilGroup
	err := r.Pool.QueryRow(ctx, `SELECT id, dvalue, user_id, stamp FROM concil WHERE id = $1;`, id).
		Scan(&m.ID, &m.DValue, &m.UserID, &m.Stamp)
	if err != nil {
		return nil, notFound(err, "reconciliation group %d", id)
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT concil_id, type, other_id FROM concil_ids WHERE concil_id = $1 ORDER BY type DESC, other_id;`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of reconciliation group %d: %w", id, err)
	}
	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ConcilMember, error) {
		var mm models.ConcilMember
		err := row.Scan(&mm.ConcilID, &mm.Type, &mm.OtherID)
		return mm, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reconciliation members: %w", err)
	}

	group := mapping.ToDomainConcilGroup(m, members)
	return &group, nil
}

// FindGroupByMember retrieves the group holding the tag.
func (r *PgxConcilRepository) FindGroupByMember(ctx context.Context, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `SELECT concil_id FROM concil_ids WHERE type = $1 AND other_id = $2;`,
		string(memberType), otherID).Scan(&id)
	if err != nil {
		return nil, notFound(err, "reconciliation group of %s %d", memberType, otherID)
	}
	return r.FindGroupByID(ctx, id)
}
