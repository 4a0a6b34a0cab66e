package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountFormatter converts amounts from and to their display form, using the
// configured decimal and thousands separators.
type AmountFormatter struct {
	DecimalSep  string
	ThousandSep string
}

// NewAmountFormatter returns a formatter; an empty decimal separator falls back to ".".
func NewAmountFormatter(decimalSep, thousandSep string) *AmountFormatter {
	if decimalSep == "" {
		decimalSep = "."
	}
	if thousandSep == decimalSep {
		thousandSep = ""
	}
	return &AmountFormatter{DecimalSep: decimalSep, ThousandSep: thousandSep}
}

// Parse reads a display amount. An empty string parses as zero.
// Example: with "," as decimal separator and " " as thousands separator,
// "1 234,50" returns 1234.5
func (f *AmountFormatter) Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if f.ThousandSep != "" {
		s = strings.ReplaceAll(s, f.ThousandSep, "")
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if f.DecimalSep != "." {
		s = strings.Replace(s, f.DecimalSep, ".", 1)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

// Format renders amount with the given number of decimal digits.
// Example: 1234.5 with digits 2, "," and " " returns "1 234,50"
func (f *AmountFormatter) Format(amount decimal.Decimal, digits int) string {
	fixed := amount.StringFixed(int32(digits))

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	if f.ThousandSep != "" && len(intPart) > 3 {
		var b strings.Builder
		head := len(intPart) % 3
		if head > 0 {
			b.WriteString(intPart[:head])
		}
		for i := head; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteString(f.ThousandSep)
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + f.DecimalSep + fracPart
}

// FormatForCurrency renders amount with the precision of the currency.
// An empty (zero) amount renders as an empty string, as in an entry grid.
func (f *AmountFormatter) FormatForCurrency(amount decimal.Decimal, currency *domain.Currency) string {
	if amount.IsZero() {
		return ""
	}
	digits := domain.DefaultCurrencyDigits
	if currency != nil {
		digits = currency.Digits
	}
	return f.Format(amount, digits)
}

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Digits)).String()
}
