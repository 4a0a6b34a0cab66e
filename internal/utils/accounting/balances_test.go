package accounting_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeBalances_MixedCurrencies(t *testing.T) {
	rows := []domain.EntryRow{
		{Currency: "EUR", Debit: "100", Credit: ""},
		{Currency: "EUR", Debit: "", Credit: "100"},
		{Currency: "USD", Debit: "50", Credit: ""},
	}
	parser := utils.NewAmountFormatter(".", "")

	set := accounting.ComputeBalances(rows, parser, nil)

	buckets := set.Buckets()
	require.Len(t, buckets, 2)

	assert.Equal(t, "EUR", buckets[0].Currency)
	assert.True(t, dec("100").Equal(buckets[0].Debit))
	assert.True(t, dec("100").Equal(buckets[0].Credit))
	assert.True(t, buckets[0].IsBalanced())

	assert.Equal(t, "USD", buckets[1].Currency)
	assert.True(t, dec("50").Equal(buckets[1].Debit))
	assert.True(t, buckets[1].Credit.IsZero())
	assert.False(t, buckets[1].IsBalanced())

	assert.False(t, set.AllBalanced())
}

func TestComputeBalances_SkipsRowsWithoutCurrencyOrAmounts(t *testing.T) {
	rows := []domain.EntryRow{
		{Currency: "", Debit: "10"},
		{Currency: "EUR"},
		{Currency: "EUR", Debit: "not a number", Credit: "5"},
	}
	parser := utils.NewAmountFormatter(".", "")

	set := accounting.ComputeBalances(rows, parser, nil)

	require.Equal(t, 1, set.Len())
	eur, ok := set.Get("EUR")
	require.True(t, ok)
	assert.True(t, eur.Debit.IsZero())
	assert.True(t, dec("5").Equal(eur.Credit))
}

func TestComputeBalances_IsIdempotent(t *testing.T) {
	rows := []domain.EntryRow{
		{Currency: "JPY", Debit: "1 500"},
		{Currency: "EUR", Credit: "12,50"},
		{Currency: "JPY", Credit: "1 500"},
	}
	parser := utils.NewAmountFormatter(",", " ")
	digits := accounting.DigitsFromCurrencies([]domain.Currency{{Code: "JPY", Digits: 0}})

	first := accounting.ComputeBalances(rows, parser, digits)
	second := accounting.ComputeBalances(rows, parser, digits)

	assert.Equal(t, first.Buckets(), second.Buckets())
	jpy, ok := first.Get("JPY")
	require.True(t, ok)
	assert.Equal(t, 0, jpy.Digits)
	eur, ok := first.Get("EUR")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultCurrencyDigits, eur.Digits)
}

func TestComputeBalances_VisibleDropsZeroBuckets(t *testing.T) {
	rows := []domain.EntryRow{
		{Currency: "EUR", Debit: "0"},
		{Currency: "USD", Debit: "1"},
	}
	set := accounting.ComputeBalances(rows, utils.NewAmountFormatter(".", ""), nil)

	assert.Equal(t, 2, set.Len())
	visible := set.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "USD", visible[0].Currency)
}

func TestComputeEntryBalances_IgnoresDeletedEntries(t *testing.T) {
	entries := []domain.Entry{
		{Currency: "EUR", Debit: dec("40"), Status: domain.StatusRough},
		{Currency: "EUR", Credit: dec("40"), Status: domain.StatusValidated},
		{Currency: "EUR", Debit: dec("999"), Status: domain.StatusDeleted},
	}

	set := accounting.ComputeEntryBalances(entries, nil)

	eur, ok := set.Get("EUR")
	require.True(t, ok)
	assert.True(t, eur.IsBalanced())
	assert.True(t, dec("40").Equal(eur.Debit))
}
