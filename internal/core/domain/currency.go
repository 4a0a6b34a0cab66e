package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	Code   string `json:"code"`   // Primary Key (e.g., "EUR")
	Label  string `json:"label"`  // e.g., "Euro"
	Symbol string `json:"symbol"` // e.g., "€"
	Digits int    `json:"digits"` // decimal digits used to display and compare amounts
	AuditFields
}

// DefaultCurrencyDigits is used when a currency cannot be resolved.
const DefaultCurrencyDigits = 2
