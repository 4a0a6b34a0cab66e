package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle status of an entry.
type EntryStatus int

const (
	StatusDeleted EntryStatus = iota + 1
	StatusRough
	StatusValidated
	StatusPast
	StatusFuture
)

var entryStatusNames = map[EntryStatus]string{
	StatusDeleted:   "DELETED",
	StatusRough:     "ROUGH",
	StatusValidated: "VALIDATED",
	StatusPast:      "PAST",
	StatusFuture:    "FUTURE",
}

func (s EntryStatus) String() string {
	if name, ok := entryStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("EntryStatus(%d)", int(s))
}

// ParseEntryStatus converts a status name (case-insensitive) back to an EntryStatus.
func ParseEntryStatus(s string) (EntryStatus, error) {
	for status, name := range entryStatusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown entry status %q", s)
}

// EntryPeriod locates the effect date of an entry relative to the dossier exercise.
type EntryPeriod int

const (
	PeriodPast EntryPeriod = iota + 1
	PeriodCurrent
	PeriodFuture
)

var entryPeriodNames = map[EntryPeriod]string{
	PeriodPast:    "PAST",
	PeriodCurrent: "CURRENT",
	PeriodFuture:  "FUTURE",
}

func (p EntryPeriod) String() string {
	if name, ok := entryPeriodNames[p]; ok {
		return name
	}
	return fmt.Sprintf("EntryPeriod(%d)", int(p))
}

// ParseEntryPeriod converts a period name (case-insensitive) back to an EntryPeriod.
func ParseEntryPeriod(s string) (EntryPeriod, error) {
	for period, name := range entryPeriodNames {
		if strings.EqualFold(name, s) {
			return period, nil
		}
	}
	return 0, fmt.Errorf("unknown entry period %q", s)
}

// Entry is a double-entry bookkeeping line.
// Exactly one of Debit and Credit is non-zero.
type Entry struct {
	Number      int64           `json:"number"` // 0 while not yet persisted
	DOpe        time.Time       `json:"dope"`
	DEffect     time.Time       `json:"deffect"`
	Label       string          `json:"label"`
	Ref         string          `json:"ref"` // piece reference
	Notes       string          `json:"notes"`
	Ledger      string          `json:"ledger"`  // ledger mnemonic
	Account     string          `json:"account"` // account number
	Currency    string          `json:"currency"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Status      EntryStatus     `json:"status"`
	Period      EntryPeriod     `json:"period"`
	OpeTemplate string          `json:"opeTemplate"` // operation template mnemonic
	OpeNumber   int64           `json:"opeNumber"`   // operation group number

	SettlementNumber int64      `json:"settlementNumber"` // 0 when unsettled
	SettlementUser   string     `json:"settlementUser"`
	SettlementStamp  *time.Time `json:"settlementStamp"`

	ConcilID int64 `json:"concilID"` // 0 when unreconciled
	AuditFields
}

// IsNew reports whether the entry has not been persisted yet.
func (e *Entry) IsNew() bool {
	return e.Number == 0
}

// IsSettled reports whether the entry belongs to a settlement group.
func (e *Entry) IsSettled() bool {
	return e.SettlementNumber > 0
}

// IsReconciled reports whether the entry belongs to a reconciliation group.
func (e *Entry) IsReconciled() bool {
	return e.ConcilID > 0
}

// IsRemediable reports whether the entry still contributes to the rough running
// totals of its account and ledger.
func (e *Entry) IsRemediable() bool {
	return e.Status == StatusRough && (e.Period == PeriodCurrent || e.Period == PeriodFuture)
}

func (s EntryStatus) MarshalText() ([]byte, error) {
	if s == 0 {
		return []byte{}, nil
	}
	return []byte(s.String()), nil
}

func (s *EntryStatus) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = 0
		return nil
	}
	status, err := ParseEntryStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

func (p EntryPeriod) MarshalText() ([]byte, error) {
	if p == 0 {
		return []byte{}, nil
	}
	return []byte(p.String()), nil
}

func (p *EntryPeriod) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = 0
		return nil
	}
	period, err := ParseEntryPeriod(string(text))
	if err != nil {
		return err
	}
	*p = period
	return nil
}
