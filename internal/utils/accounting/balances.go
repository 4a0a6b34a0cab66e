package accounting

import (
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountParser reads a display amount; an empty string must parse as zero.
type AmountParser interface {
	Parse(s string) (decimal.Decimal, error)
}

// DigitsFunc returns the decimal digits of a currency.
type DigitsFunc func(currency string) int

// DigitsFromCurrencies builds a DigitsFunc over a list of known currencies.
// Unknown codes use domain.DefaultCurrencyDigits.
func DigitsFromCurrencies(currencies []domain.Currency) DigitsFunc {
	digits := make(map[string]int, len(currencies))
	for _, c := range currencies {
		digits[c.Code] = c.Digits
	}
	return func(code string) int {
		if d, ok := digits[code]; ok {
			return d
		}
		return domain.DefaultCurrencyDigits
	}
}

func digitsOf(fn DigitsFunc, currency string) int {
	if fn == nil {
		return domain.DefaultCurrencyDigits
	}
	return fn(currency)
}

// ComputeBalances accumulates the debit and credit of the rows per currency.
//
// Rows without a currency, or with neither a debit nor a credit, are skipped.
// An amount that does not parse counts as zero: the row already carries a
// validation error for it.
func ComputeBalances(rows []domain.EntryRow, parser AmountParser, digits DigitsFunc) *domain.BalanceSet {
	set := domain.NewBalanceSet()
	for i := range rows {
		row := &rows[i]
		currency := strings.TrimSpace(row.Currency)
		if currency == "" {
			continue
		}
		if strings.TrimSpace(row.Debit) == "" && strings.TrimSpace(row.Credit) == "" {
			continue
		}
		debit, err := parser.Parse(row.Debit)
		if err != nil {
			debit = decimal.Zero
		}
		credit, err := parser.Parse(row.Credit)
		if err != nil {
			credit = decimal.Zero
		}
		set.Add(currency, digitsOf(digits, currency), debit, credit)
	}
	return set
}

// ComputeEntryBalances accumulates persisted entries per currency.
// Deleted entries are ignored.
func ComputeEntryBalances(entries []domain.Entry, digits DigitsFunc) *domain.BalanceSet {
	set := domain.NewBalanceSet()
	for i := range entries {
		e := &entries[i]
		if e.Currency == "" || e.Status == domain.StatusDeleted {
			continue
		}
		if e.Debit.IsZero() && e.Credit.IsZero() {
			continue
		}
		set.Add(e.Currency, digitsOf(digits, e.Currency), e.Debit, e.Credit)
	}
	return set
}
