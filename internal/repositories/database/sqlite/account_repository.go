package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
)

type accountRepository struct {
	*Store
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

const accountColumns = `number, label, currency, is_root,
	current_rough_debit, current_rough_credit, future_rough_debit, future_rough_credit,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	args := append([]any{m.Number, m.Label, m.Currency, boolToInt(m.IsRoot)}, auditArgs(m.AuditFields)...)
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO accounts (number, label, currency, is_root, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(number) DO UPDATE SET
			label = excluded.label, currency = excluded.currency, is_root = excluded.is_root,
			last_updated_at = excluded.last_updated_at, last_updated_by = excluded.last_updated_by`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("save account %s: %w", m.Number, err)
	}
	return nil
}

func (r *accountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row := r.reader.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE number = ?`, number)
	m, err := scanAccount(row)
	if err != nil {
		return nil, notFound(err, "account %s", number)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.reader.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *accountRepository) UpdateAccountAmounts(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	res, err := r.writer.ExecContext(ctx,
		`UPDATE accounts SET current_rough_debit = ?, current_rough_credit = ?,
			future_rough_debit = ?, future_rough_credit = ?
		 WHERE number = ?`,
		m.CurrentRoughDebit.String(), m.CurrentRoughCredit.String(),
		m.FutureRoughDebit.String(), m.FutureRoughCredit.String(), m.Number,
	)
	if err != nil {
		return fmt.Errorf("update amounts of account %s: %w", m.Number, err)
	}
	return affected(res, "account %s", m.Number)
}

func (r *accountRepository) ResetRoughAmounts(ctx context.Context) error {
	_, err := r.writer.ExecContext(ctx,
		`UPDATE accounts SET current_rough_debit = '0', current_rough_credit = '0',
			future_rough_debit = '0', future_rough_credit = '0'`)
	if err != nil {
		return fmt.Errorf("reset account amounts: %w", err)
	}
	return nil
}

func scanAccount(row scanner) (models.Account, error) {
	var (
		m     models.Account
		audit auditText
	)
	dest := []any{&m.Number, &m.Label, &m.Currency, &m.IsRoot,
		&m.CurrentRoughDebit, &m.CurrentRoughCredit, &m.FutureRoughDebit, &m.FutureRoughCredit}
	if err := row.Scan(append(dest, audit.dest()...)...); err != nil {
		return m, err
	}
	fields, err := audit.fields()
	m.AuditFields = fields
	return m, err
}
