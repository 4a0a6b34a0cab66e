package filter

import (
	"slices"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// Standard is the filter built from the entry page controls.
// Empty lists and nil bounds do not restrict anything.
type Standard struct {
	Ledgers     []string             `json:"ledgers"`
	Accounts    []string             `json:"accounts"`
	From        *time.Time           `json:"from"`
	To          *time.Time           `json:"to"`
	Statuses    []domain.EntryStatus `json:"statuses"`
	Settlement  SettlementMode       `json:"settlement"`
	Concil      ConcilMode           `json:"concil"`
	ConcilGroup int64                `json:"concilGroup"` // 0 for any group
}

// Matches reports whether the entry passes every standard criterion.
// Deleted entries only show when explicitly requested through Statuses.
func (f *Standard) Matches(e *domain.Entry, now time.Time) bool {
	if len(f.Ledgers) > 0 && !slices.Contains(f.Ledgers, e.Ledger) {
		return false
	}
	if len(f.Accounts) > 0 && !slices.Contains(f.Accounts, e.Account) {
		return false
	}
	deffect := domain.DateOnly(e.DEffect)
	if f.From != nil && deffect.Before(domain.DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && deffect.After(domain.DateOnly(*f.To)) {
		return false
	}
	if len(f.Statuses) > 0 {
		if !slices.Contains(f.Statuses, e.Status) {
			return false
		}
	} else if e.Status == domain.StatusDeleted {
		return false
	}
	if !f.Settlement.Matches(e, now) || !f.Concil.Matches(e) {
		return false
	}
	if f.ConcilGroup > 0 && !MatchesConcilGroup(e, f.ConcilGroup) {
		return false
	}
	return true
}

// View is what the user currently looks at: either the standard filter or the
// user-built extended criteria.
type View struct {
	Standard    Standard    `json:"standard"`
	Extended    []Criterion `json:"extended"`
	UseExtended bool        `json:"useExtended"`
}
