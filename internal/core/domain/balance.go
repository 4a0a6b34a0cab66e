package domain

import (
	"github.com/shopspring/decimal"
)

// CurrencyBalance accumulates debit and credit amounts for one currency.
type CurrencyBalance struct {
	Currency string          `json:"currency"`
	Digits   int             `json:"digits"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
}

// IsBalanced reports whether debit equals credit at the currency precision.
func (b *CurrencyBalance) IsBalanced() bool {
	return b.Debit.Round(int32(b.Digits)).Equal(b.Credit.Round(int32(b.Digits)))
}

// IsZero reports whether both totals are zero.
func (b *CurrencyBalance) IsZero() bool {
	return b.Debit.IsZero() && b.Credit.IsZero()
}

// BalanceSet is a set of per-currency balances kept in first-encounter order.
type BalanceSet struct {
	order   []string
	buckets map[string]*CurrencyBalance
}

// NewBalanceSet returns an empty set.
func NewBalanceSet() *BalanceSet {
	return &BalanceSet{buckets: make(map[string]*CurrencyBalance)}
}

// Add accumulates amounts into the currency bucket, creating it on first encounter.
func (s *BalanceSet) Add(currency string, digits int, debit, credit decimal.Decimal) {
	b, ok := s.buckets[currency]
	if !ok {
		b = &CurrencyBalance{Currency: currency, Digits: digits}
		s.buckets[currency] = b
		s.order = append(s.order, currency)
	}
	b.Debit = b.Debit.Add(debit)
	b.Credit = b.Credit.Add(credit)
}

// Get returns the bucket for the currency, if any.
func (s *BalanceSet) Get(currency string) (*CurrencyBalance, bool) {
	b, ok := s.buckets[currency]
	return b, ok
}

// Len returns the number of buckets.
func (s *BalanceSet) Len() int {
	return len(s.order)
}

// Buckets returns copies of every bucket in first-encounter order.
func (s *BalanceSet) Buckets() []CurrencyBalance {
	out := make([]CurrencyBalance, 0, len(s.order))
	for _, cur := range s.order {
		out = append(out, *s.buckets[cur])
	}
	return out
}

// Visible returns the non-zero buckets in first-encounter order.
func (s *BalanceSet) Visible() []CurrencyBalance {
	out := make([]CurrencyBalance, 0, len(s.order))
	for _, cur := range s.order {
		if b := s.buckets[cur]; !b.IsZero() {
			out = append(out, *b)
		}
	}
	return out
}

// AllBalanced reports whether every bucket is balanced.
func (s *BalanceSet) AllBalanced() bool {
	for _, b := range s.buckets {
		if !b.IsBalanced() {
			return false
		}
	}
	return true
}
