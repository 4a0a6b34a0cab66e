package models

// Currency represents a supported currency.
type Currency struct {
	Code   string `db:"code"`   // Primary Key (e.g., "EUR")
	Label  string `db:"label"`  // e.g., "Euro"
	Symbol string `db:"symbol"` // e.g., "€"
	Digits int    `db:"digits"`
	AuditFields
}
