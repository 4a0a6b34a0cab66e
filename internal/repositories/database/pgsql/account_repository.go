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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `number, label, currency, is_root,
	current_rough_debit, current_rough_credit, future_rough_debit, future_rough_credit,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveAccount inserts or updates the account definition, keeping its totals.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (number, label, currency, is_root, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (number) DO UPDATE SET
			label = EXCLUDED.label,
			currency = EXCLUDED.currency,
			is_root = EXCLUDED.is_root,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, m.Number, m.Label, m.Currency, m.IsRoot,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.Number, err)
	}
	return nil
}

// FindAccountByNumber retrieves one account with its rough totals.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE number = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, notFound(err, "account %s", number)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves the whole chart ordered by number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY number;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccountAmounts persists the four rough totals.
func (r *PgxAccountRepository) UpdateAccountAmounts(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts SET
			current_rough_debit = $2, current_rough_credit = $3,
			future_rough_debit = $4, future_rough_credit = $5
		WHERE number = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Number,
		m.CurrentRoughDebit, m.CurrentRoughCredit, m.FutureRoughDebit, m.FutureRoughCredit)
	if err != nil {
		return fmt.Errorf("failed to update amounts of account %s: %w", m.Number, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", m.Number, apperrors.ErrNotFound)
	}
	return nil
}

// ResetRoughAmounts zeroes the rough totals of every account.
func (r *PgxAccountRepository) ResetRoughAmounts(ctx context.Context) error {
	query := `
		UPDATE accounts SET
			current_rough_debit = 0, current_rough_credit = 0,
			future_rough_debit = 0, future_rough_credit = 0;
	`
	if _, err := r.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to reset account amounts: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(&m.Number, &m.Label, &m.Currency, &m.IsRoot,
		&m.CurrentRoughDebit, &m.CurrentRoughCredit, &m.FutureRoughDebit, &m.FutureRoughCredit,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}
