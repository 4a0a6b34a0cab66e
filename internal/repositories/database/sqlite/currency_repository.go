package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
)

type currencyRepository struct {
	*Store
}

var _ portsrepo.CurrencyRepositoryFacade = (*currencyRepository)(nil)

const currencyColumns = `code, label, symbol, digits, created_at, created_by, last_updated_at, last_updated_by`

func (r *currencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	args := append([]any{m.Code, m.Label, m.Symbol, m.Digits}, auditArgs(m.AuditFields)...)
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO currencies (`+currencyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET
			label = excluded.label, symbol = excluded.symbol, digits = excluded.digits,
			last_updated_at = excluded.last_updated_at, last_updated_by = excluded.last_updated_by`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("save currency %s: %w", m.Code, err)
	}
	return nil
}

func (r *currencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	row := r.reader.QueryRowContext(ctx, `SELECT `+currencyColumns+` FROM currencies WHERE code = ?`, code)
	m, err := scanCurrency(row)
	if err != nil {
		return nil, notFound(err, "currency %s", code)
	}
	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

func (r *currencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.reader.QueryContext(ctx, `SELECT `+currencyColumns+` FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var ms []models.Currency
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainCurrencySlice(ms), nil
}

func scanCurrency(row scanner) (models.Currency, error) {
	var (
		m     models.Currency
		audit auditText
	)
	if err := row.Scan(append([]any{&m.Code, &m.Label, &m.Symbol, &m.Digits}, audit.dest()...)...); err != nil {
		return m, err
	}
	fields, err := audit.fields()
	m.AuditFields = fields
	return m, err
}
