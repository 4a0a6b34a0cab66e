package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
)

type ledgerRepository struct {
	*Store
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

const (
	ledgerColumns  = `mnemo, label, last_close, created_at, created_by, last_updated_at, last_updated_by`
	balanceColumns = `mnemo, currency, current_rough_debit, current_rough_credit, future_rough_debit, future_rough_credit`
)

func (r *ledgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	m := mapping.ToModelLedger(ledger)
	args := append([]any{m.Mnemo, m.Label, formatNullDate(m.LastClose)}, auditArgs(m.AuditFields)...)
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO ledgers (`+ledgerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(mnemo) DO UPDATE SET
			label = excluded.label, last_close = excluded.last_close,
			last_updated_at = excluded.last_updated_at, last_updated_by = excluded.last_updated_by`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("save ledger %s: %w", m.Mnemo, err)
	}
	return nil
}

func (r *ledgerRepository) FindLedgerByMnemo(ctx context.Context, mnemo string) (*domain.Ledger, error) {
	row := r.reader.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE mnemo = ?`, mnemo)
	m, err := scanLedger(row)
	if err != nil {
		return nil, notFound(err, "ledger %s", mnemo)
	}
	balances, err := r.listBalances(ctx, `WHERE mnemo = ?`, mnemo)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainLedger(m, balances[mnemo])
	return &d, nil
}

func (r *ledgerRepository) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	rows, err := r.reader.QueryContext(ctx, `SELECT `+ledgerColumns+` FROM ledgers ORDER BY mnemo`)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()

	var ms []models.Ledger
	for rows.Next() {
		m, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	balances, err := r.listBalances(ctx, "")
	if err != nil {
		return nil, err
	}
	ledgers := make([]domain.Ledger, len(ms))
	for i, m := range ms {
		ledgers[i] = mapping.ToDomainLedger(m, balances[m.Mnemo])
	}
	return ledgers, nil
}

func (r *ledgerRepository) listBalances(ctx context.Context, where string, args ...any) (map[string][]models.LedgerBalance, error) {
	rows, err := r.reader.QueryContext(ctx,
		`SELECT `+balanceColumns+` FROM ledger_balances `+where+` ORDER BY mnemo, currency`, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger balances: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]models.LedgerBalance)
	for rows.Next() {
		var b models.LedgerBalance
		if err := rows.Scan(&b.Mnemo, &b.Currency,
			&b.CurrentRoughDebit, &b.CurrentRoughCredit, &b.FutureRoughDebit, &b.FutureRoughCredit); err != nil {
			return nil, fmt.Errorf("scan ledger balance: %w", err)
		}
		grouped[b.Mnemo] = append(grouped[b.Mnemo], b)
	}
	return grouped, rows.Err()
}

func (r *ledgerRepository) UpdateLedgerBalance(ctx context.Context, ledger domain.Ledger, currency string) error {
	balance, ok := ledger.Balances[currency]
	if !ok {
		return fmt.Errorf("%w: ledger %s has no %s balance", apperrors.ErrValidation, ledger.Mnemo, currency)
	}
	b := mapping.ToModelLedgerBalance(ledger.Mnemo, balance)
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO ledger_balances (`+balanceColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(mnemo, currency) DO UPDATE SET
			current_rough_debit = excluded.current_rough_debit,
			current_rough_credit = excluded.current_rough_credit,
			future_rough_debit = excluded.future_rough_debit,
			future_rough_credit = excluded.future_rough_credit`,
		b.Mnemo, b.Currency,
		b.CurrentRoughDebit.String(), b.CurrentRoughCredit.String(),
		b.FutureRoughDebit.String(), b.FutureRoughCredit.String(),
	)
	if err != nil {
		return fmt.Errorf("update %s balance of ledger %s: %w", currency, ledger.Mnemo, err)
	}
	return nil
}

func (r *ledgerRepository) ResetRoughBalances(ctx context.Context) error {
	_, err := r.writer.ExecContext(ctx,
		`UPDATE ledger_balances SET current_rough_debit = '0', current_rough_credit = '0',
			future_rough_debit = '0', future_rough_credit = '0'`)
	if err != nil {
		return fmt.Errorf("reset ledger balances: %w", err)
	}
	return nil
}

func scanLedger(row scanner) (models.Ledger, error) {
	var (
		m         models.Ledger
		lastClose sql.NullString
		audit     auditText
	)
	if err := row.Scan(append([]any{&m.Mnemo, &m.Label, &lastClose}, audit.dest()...)...); err != nil {
		return m, err
	}
	var err error
	if m.LastClose, err = parseNullDate(lastClose); err != nil {
		return m, err
	}
	m.AuditFields, err = audit.fields()
	return m, err
}
