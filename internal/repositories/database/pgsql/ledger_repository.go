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

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const (
	ledgerColumns  = `mnemo, label, last_close, created_at, created_by, last_updated_at, last_updated_by`
	balanceColumns = `mnemo, currency, current_rough_debit, current_rough_credit, future_rough_debit, future_rough_credit`
)

// SaveLedger inserts or updates the ledger definition.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	m := mapping.ToModelLedger(ledger)
	query := `
		INSERT INTO ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (mnemo) DO UPDATE SET
			label = EXCLUDED.label,
			last_close = EXCLUDED.last_close,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, m.Mnemo, m.Label, m.LastClose,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", m.Mnemo, err)
	}
	return nil
}

// FindLedgerByMnemo retrieves the ledger and all its per-currency balances.
func (r *PgxLedgerRepository) FindLedgerByMnemo(ctx context.Context, mnemo string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE mnemo = $1;`

	m, err := scanLedger(r.Pool.QueryRow(ctx, query, mnemo))
	if err != nil {
		return nil, notFound(err, "ledger %s", mnemo)
	}

	balances, err := r.listBalances(ctx, `WHERE mnemo = $1`, mnemo)
	if err != nil {
		return nil, err
	}
	ledger := mapping.ToDomainLedger(m, balances[mnemo])
	return &ledger, nil
}

// ListLedgers retrieves every ledger with its balances, ordered by mnemonic.
func (r *PgxLedgerRepository) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers ORDER BY mnemo;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Ledger, error) {
		return scanLedger(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger rows: %w", err)
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

// listBalances loads balance rows grouped by ledger mnemonic.
func (r *PgxLedgerRepository) listBalances(ctx context.Context, where string, args ...any) (map[string][]models.LedgerBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM ledger_balances ` + where + ` ORDER BY mnemo, currency;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger balances: %w", err)
	}
	bs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerBalance, error) {
		var b models.LedgerBalance
		err := row.Scan(&b.Mnemo, &b.Currency,
			&b.CurrentRoughDebit, &b.CurrentRoughCredit, &b.FutureRoughDebit, &b.FutureRoughCredit)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger balance rows: %w", err)
	}

	grouped := make(map[string][]models.LedgerBalance)
	for _, b := range bs {
		grouped[b.Mnemo] = append(grouped[b.Mnemo], b)
	}
	return grouped, nil
}

// UpdateLedgerBalance upserts the totals of one currency of the ledger.
func (r *PgxLedgerRepository) UpdateLedgerBalance(ctx context.Context, ledger domain.Ledger, currency string) error {
	balance, ok := ledger.Balances[currency]
	if !ok {
		return fmt.Errorf("%w: ledger %s has no %s balance", apperrors.ErrValidation, ledger.Mnemo, currency)
	}
	b := mapping.ToModelLedgerBalance(ledger.Mnemo, balance)
	query := `
		INSERT INTO ledger_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mnemo, currency) DO UPDATE SET
			current_rough_debit = EXCLUDED.current_rough_debit,
			current_rough_credit = EXCLUDED.current_rough_credit,
			future_rough_debit = EXCLUDED.future_rough_debit,
			future_rough_credit = EXCLUDED.future_rough_credit;
	`
	_, err := r.Pool.Exec(ctx, query, b.Mnemo, b.Currency,
		b.CurrentRoughDebit, b.CurrentRoughCredit, b.FutureRoughDebit, b.FutureRoughCredit)
	if err != nil {
		return fmt.Errorf("failed to update %s balance of ledger %s: %w", currency, ledger.Mnemo, err)
	}
	return nil
}

// ResetRoughBalances zeroes the rough totals of every ledger and currency.
func (r *PgxLedgerRepository) ResetRoughBalances(ctx context.Context) error {
	query := `
		UPDATE ledger_balances SET
			current_rough_debit = 0, current_rough_credit = 0,
			future_rough_debit = 0, future_rough_credit = 0;
	`
	if _, err := r.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to reset ledger balances: %w", err)
	}
	return nil
}

func scanLedger(row pgx.Row) (models.Ledger, error) {
	var m models.Ledger
	err := row.Scan(&m.Mnemo, &m.Label, &m.LastClose,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}
