package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
)

type concilRepository struct {
	*Store
}

var _ portsrepo.ConcilRepositoryFacade = (*concilRepository)(nil)

func (r *concilRepository) CreateGroup(ctx context.Context, group domain.ConcilGroup) error {
	m := mapping.ToModelConcilGroup(group)
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO concil (id, dvalue, user_id, stamp) VALUES (?, ?, ?, ?)`,
		m.ID, formatDate(m.DValue), m.UserID, formatStamp(m.Stamp))
	if err != nil {
		return fmt.Errorf("create reconciliation group %d: %w", m.ID, err)
	}
	return nil
}

func (r *concilRepository) AddMember(ctx context.Context, groupID int64, member domain.ConcilMember) error {
	m := mapping.ToModelConcilMember(groupID, member)
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO concil_ids (concil_id, type, other_id) VALUES (?, ?, ?)`,
			m.ConcilID, m.Type, m.OtherID); err != nil {
			return fmt.Errorf("add %s %d to reconciliation group %d: %w", m.Type, m.OtherID, groupID, err)
		}
		if member.Type != domain.ConcilEntry {
			return nil
		}
		res, err := tx.ExecContext(ctx, `UPDATE entries SET concil_id = ? WHERE number = ?`, groupID, m.OtherID)
		if err != nil {
			return fmt.Errorf("reconcile entry %d: %w", m.OtherID, err)
		}
		return affected(res, "entry %d", m.OtherID)
	})
}

func (r *concilRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE entries SET concil_id = 0 WHERE concil_id = ?`, groupID); err != nil {
			return fmt.Errorf("release entries of reconciliation group %d: %w", groupID, err)
		}
		// Member tags cascade with the header.
		res, err := tx.ExecContext(ctx, `DELETE FROM concil WHERE id = ?`, groupID)
		if err != nil {
			return fmt.Errorf("delete reconciliation group %d: %w", groupID, err)
		}
		return affected(res, "reconciliation group %d", groupID)
	})
}

func (r *concilRepository) FindGroupByID(ctx context.Context, id int64) (*domain.ConcilGroup, error) {
	var (
		m             models.ConcilGroup
		dvalue, stamp string
	)
	err := r.reader.QueryRowContext(ctx, `SELECT id, dvalue, user_id, stamp FROM concil WHERE id = ?`, id).
		Scan(&m.ID, &dvalue, &m.UserID, &stamp)
	if err != nil {
		return nil, notFound(err, "reconciliation group %d", id)
	}
	if m.DValue, err = parseDate(dvalue); err != nil {
		return nil, err
	}
	if m.Stamp, err = parseStamp(stamp); err != nil {
		return nil, err
	}

	rows, err := r.reader.QueryContext(ctx,
		`SELECT concil_id, type, other_id FROM concil_ids WHERE concil_id = ? ORDER BY type DESC, other_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list members of reconciliation group %d: %w", id, err)
	}
	defer rows.Close()

	var members []models.ConcilMember
	for rows.Next() {
		var mm models.ConcilMember
		if err := rows.Scan(&mm.ConcilID, &mm.Type, &mm.OtherID); err != nil {
			return nil, fmt.Errorf("scan reconciliation member: %w", err)
		}
		members = append(members, mm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	group := mapping.ToDomainConcilGroup(m, members)
	return &group, nil
}

func (r *concilRepository) FindGroupByMember(ctx context.Context, memberType domain.ConcilMemberType, otherID int64) (*domain.ConcilGroup, error) {
	var id int64
	err := r.reader.QueryRowContext(ctx, `SELECT concil_id FROM concil_ids WHERE type = ? AND other_id = ?`,
		string(memberType), otherID).Scan(&id)
	if err != nil {
		return nil, notFound(err, "reconciliation group of %s %d", memberType, otherID)
	}
	return r.FindGroupByID(ctx, id)
}
