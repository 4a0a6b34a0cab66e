package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a row of the entries table. Status and period are stored by name.
type Entry struct {
	Number           int64           `db:"number"`
	DOpe             time.Time       `db:"dope"`
	DEffect          time.Time       `db:"deffect"`
	Label            string          `db:"label"`
	Ref              string          `db:"ref"`
	Notes            string          `db:"notes"`
	Ledger           string          `db:"ledger"`
	Account          string          `db:"account"`
	Currency         string          `db:"currency"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
	Status           string          `db:"status"`
	Period           string          `db:"period"`
	OpeTemplate      string          `db:"ope_template"`
	OpeNumber        int64           `db:"ope_number"`
	SettlementNumber int64           `db:"settlement_number"` // 0 when unsettled
	SettlementUser   string          `db:"settlement_user"`
	SettlementStamp  *time.Time      `db:"settlement_stamp"` // Nullable
	ConcilID         int64           `db:"concil_id"`        // 0 when unreconciled
	AuditFields
}
