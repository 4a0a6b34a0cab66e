package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
)

type entryRepository struct {
	*Store
}

var _ portsrepo.EntryRepositoryFacade = (*entryRepository)(nil)

const entryColumns = `number, dope, deffect, label, ref, notes, ledger, account, currency,
	debit, credit, status, period, ope_template, ope_number,
	settlement_number, settlement_user, settlement_stamp, concil_id,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *entryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	m := mapping.ToModelEntry(*entry)
	args := append([]any{
		formatDate(m.DOpe), formatDate(m.DEffect), m.Label, m.Ref, m.Notes,
		m.Ledger, m.Account, m.Currency, m.Debit.String(), m.Credit.String(),
		m.Status, m.Period, m.OpeTemplate, m.OpeNumber,
	}, auditArgs(m.AuditFields)...)

	res, err := r.writer.ExecContext(ctx,
		`INSERT INTO entries (
			dope, deffect, label, ref, notes, ledger, account, currency,
			debit, credit, status, period, ope_template, ope_number,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry", err)
	}
	number, err := res.LastInsertId()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read entry number", err)
	}
	entry.Number = number
	return nil
}

func (r *entryRepository) Update(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	res, err := r.writer.ExecContext(ctx,
		`UPDATE entries SET
			dope = ?, deffect = ?, label = ?, ref = ?, notes = ?,
			ledger = ?, account = ?, currency = ?, debit = ?, credit = ?,
			status = ?, period = ?, ope_template = ?, ope_number = ?,
			last_updated_at = ?, last_updated_by = ?
		 WHERE number = ?`,
		formatDate(m.DOpe), formatDate(m.DEffect), m.Label, m.Ref, m.Notes,
		m.Ledger, m.Account, m.Currency, m.Debit.String(), m.Credit.String(),
		m.Status, m.Period, m.OpeTemplate, m.OpeNumber,
		formatStamp(m.LastUpdatedAt), m.LastUpdatedBy, m.Number,
	)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", m.Number, err)
	}
	return affected(res, "entry %d", m.Number)
}

func (r *entryRepository) Delete(ctx context.Context, number int64, userID string, now time.Time) error {
	res, err := r.writer.ExecContext(ctx,
		`UPDATE entries SET status = ?, last_updated_at = ?, last_updated_by = ? WHERE number = ?`,
		domain.StatusDeleted.String(), formatStamp(now), userID, number)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", number, err)
	}
	return affected(res, "entry %d", number)
}

func (r *entryRepository) UpdateSettlement(ctx context.Context, number int64, settlementNumber int64, userID string, now time.Time) error {
	var (
		user  string
		stamp sql.NullString
	)
	if settlementNumber == domain.SettlementClear {
		settlementNumber = 0
	} else {
		user, stamp = userID, formatNullStamp(&now)
	}

	res, err := r.writer.ExecContext(ctx,
		`UPDATE entries SET settlement_number = ?, settlement_user = ?, settlement_stamp = ?
		 WHERE number = ? AND status <> ?`,
		settlementNumber, user, stamp, number, domain.StatusDeleted.String())
	if err != nil {
		return fmt.Errorf("update settlement of entry %d: %w", number, err)
	}
	return affected(res, "undeleted entry %d", number)
}

func (r *entryRepository) FindByNumber(ctx context.Context, number int64) (*domain.Entry, error) {
	row := r.reader.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE number = ?`, number)
	m, err := scanEntry(row)
	if err != nil {
		return nil, notFound(err, "entry %d", number)
	}
	entry, err := mapping.ToDomainEntry(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map entry", err)
	}
	return &entry, nil
}

func (r *entryRepository) List(ctx context.Context, q portsrepo.EntryQuery) ([]domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE 1=1`
	args := []any{}

	if len(q.Numbers) > 0 {
		query += ` AND number IN (` + placeholders(len(q.Numbers)) + `)`
		for _, n := range q.Numbers {
			args = append(args, n)
		}
	}
	if len(q.Ledgers) > 0 {
		query += ` AND ledger IN (` + placeholders(len(q.Ledgers)) + `)`
		for _, l := range q.Ledgers {
			args = append(args, l)
		}
	}
	if len(q.Accounts) > 0 {
		query += ` AND account IN (` + placeholders(len(q.Accounts)) + `)`
		for _, a := range q.Accounts {
			args = append(args, a)
		}
	}
	// ISO dates compare correctly as text.
	if q.From != nil {
		query += ` AND deffect >= ?`
		args = append(args, formatDate(*q.From))
	}
	if q.To != nil {
		query += ` AND deffect <= ?`
		args = append(args, formatDate(*q.To))
	}
	if !q.IncludeDeleted {
		query += ` AND status <> ?`
		args = append(args, domain.StatusDeleted.String())
	}
	query += ` ORDER BY deffect, number`

	rows, err := r.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var ms []models.Entry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	entries, err := mapping.ToDomainEntrySlice(ms)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map entries", err)
	}
	return entries, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func scanEntry(row scanner) (models.Entry, error) {
	var (
		m               models.Entry
		dope, deffect   string
		settlementStamp sql.NullString
		audit           auditText
	)
	dest := []any{&m.Number, &dope, &deffect, &m.Label, &m.Ref, &m.Notes,
		&m.Ledger, &m.Account, &m.Currency, &m.Debit, &m.Credit,
		&m.Status, &m.Period, &m.OpeTemplate, &m.OpeNumber,
		&m.SettlementNumber, &m.SettlementUser, &settlementStamp, &m.ConcilID}
	if err := row.Scan(append(dest, audit.dest()...)...); err != nil {
		return m, err
	}

	var err error
	if m.DOpe, err = parseDate(dope); err != nil {
		return m, err
	}
	if m.DEffect, err = parseDate(deffect); err != nil {
		return m, err
	}
	if m.SettlementStamp, err = parseNullStamp(settlementStamp); err != nil {
		return m, err
	}
	m.AuditFields, err = audit.fields()
	return m, err
}
