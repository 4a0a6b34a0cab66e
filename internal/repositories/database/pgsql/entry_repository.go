package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for entries.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `number, dope, deffect, label, ref, notes, ledger, account, currency,
	debit, credit, status, period, ope_template, ope_number,
	settlement_number, settlement_user, settlement_stamp, concil_id,
	created_at, created_by, last_updated_at, last_updated_by`

// Insert stores a new entry and sets the number allocated by the sequence.
func (r *PgxEntryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	m := mapping.ToModelEntry(*entry)
	query := `
		INSERT INTO entries (
			dope, deffect, label, ref, notes, ledger, account, currency,
			debit, credit, status, period, ope_template, ope_number,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING number;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.DOpe, m.DEffect, m.Label, m.Ref, m.Notes, m.Ledger, m.Account, m.Currency,
		m.Debit, m.Credit, m.Status, m.Period, m.OpeTemplate, m.OpeNumber,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&entry.Number)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry", err)
	}
	return nil
}

// Update rewrites the editable columns. Settlement and reconciliation columns
// have their own writers.
func (r *PgxEntryRepository) Update(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		UPDATE entries SET
			dope = $2, deffect = $3, label = $4, ref = $5, notes = $6,
			ledger = $7, account = $8, currency = $9, debit = $10, credit = $11,
			status = $12, period = $13, ope_template = $14, ope_number = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE number = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Number,
		m.DOpe, m.DEffect, m.Label, m.Ref, m.Notes,
		m.Ledger, m.Account, m.Currency, m.Debit, m.Credit,
		m.Status, m.Period, m.OpeTemplate, m.OpeNumber,
		m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update entry %d: %w", m.Number, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %d: %w", m.Number, apperrors.ErrNotFound)
	}
	return nil
}

// Delete flags the entry as deleted.
func (r *PgxEntryRepository) Delete(ctx context.Context, number int64, userID string, now time.Time) error {
	query := `UPDATE entries SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE number = $1;`
	tag, err := r.Pool.Exec(ctx, query, number, domain.StatusDeleted.String(), now, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %d: %w", number, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %d: %w", number, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateSettlement records the settlement number, user and stamp of one entry.
// Deleted entries are left untouched and reported as not found.
func (r *PgxEntryRepository) UpdateSettlement(ctx context.Context, number int64, settlementNumber int64, userID string, now time.Time) error {
	var (
		user  string
		stamp *time.Time
	)
	if settlementNumber == domain.SettlementClear {
		settlementNumber = 0
	} else {
		user, stamp = userID, &now
	}

	query := `
		UPDATE entries SET settlement_number = $2, settlement_user = $3, settlement_stamp = $4
		WHERE number = $1 AND status <> $5;
	`
	tag, err := r.Pool.Exec(ctx, query, number, settlementNumber, user, stamp, domain.StatusDeleted.String())
	if err != nil {
		return fmt.Errorf("failed to update settlement of entry %d: %w", number, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("undeleted entry %d: %w", number, apperrors.ErrNotFound)
	}
	return nil
}

// FindByNumber retrieves one entry, deleted or not.
func (r *PgxEntryRepository) FindByNumber(ctx context.Context, number int64) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE number = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, notFound(err, "entry %d", number)
	}
	entry, err := mapping.ToDomainEntry(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map entry", err)
	}
	return &entry, nil
}

// List retrieves the entries matching the query, by effect date then number.
func (r *PgxEntryRepository) List(ctx context.Context, q portsrepo.EntryQuery) ([]domain.Entry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if len(q.Numbers) > 0 {
		add("number = ANY($%d)", q.Numbers)
	}
	if len(q.Ledgers) > 0 {
		add("ledger = ANY($%d)", q.Ledgers)
	}
	if len(q.Accounts) > 0 {
		add("account = ANY($%d)", q.Accounts)
	}
	if q.From != nil {
		add("deffect >= $%d", domain.DateOnly(*q.From))
	}
	if q.To != nil {
		add("deffect <= $%d", domain.DateOnly(*q.To))
	}
	if !q.IncludeDeleted {
		add("status <> $%d", domain.StatusDeleted.String())
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY deffect, number;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Entry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan entry rows: %w", err)
	}
	entries, err := mapping.ToDomainEntrySlice(ms)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map entries", err)
	}
	return entries, nil
}

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(&m.Number, &m.DOpe, &m.DEffect, &m.Label, &m.Ref, &m.Notes,
		&m.Ledger, &m.Account, &m.Currency, &m.Debit, &m.Credit,
		&m.Status, &m.Period, &m.OpeTemplate, &m.OpeNumber,
		&m.SettlementNumber, &m.SettlementUser, &m.SettlementStamp, &m.ConcilID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}
