package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// SettlementMode selects entries by settlement state.
type SettlementMode int

const (
	SettlementAll SettlementMode = iota
	SettlementSettled
	SettlementUnsettled
	// SettlementSession keeps unsettled entries and the ones settled today,
	// so the user sees what they are working on.
	SettlementSession
)

var settlementModeNames = map[SettlementMode]string{
	SettlementAll:       "all",
	SettlementSettled:   "settled",
	SettlementUnsettled: "unsettled",
	SettlementSession:   "session",
}

func (m SettlementMode) String() string {
	if name, ok := settlementModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SettlementMode(%d)", int(m))
}

// Matches reports whether the entry is kept by the mode; now gives the session day.
func (m SettlementMode) Matches(e *domain.Entry, now time.Time) bool {
	switch m {
	case SettlementSettled:
		return e.SettlementNumber > 0
	case SettlementUnsettled:
		return e.SettlementNumber <= 0
	case SettlementSession:
		if e.SettlementNumber <= 0 {
			return true
		}
		return e.SettlementStamp != nil && domain.SameDay(now, *e.SettlementStamp)
	default:
		return true
	}
}

func (m SettlementMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SettlementMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = SettlementAll
		return nil
	}
	for mode, name := range settlementModeNames {
		if strings.EqualFold(name, string(text)) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown settlement mode %q", string(text))
}

// ConcilMode selects entries by reconciliation state.
type ConcilMode int

const (
	ConcilAll ConcilMode = iota
	ConcilReconciled
	ConcilUnreconciled
)

var concilModeNames = map[ConcilMode]string{
	ConcilAll:          "all",
	ConcilReconciled:   "reconciled",
	ConcilUnreconciled: "unreconciled",
}

func (m ConcilMode) String() string {
	if name, ok := concilModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ConcilMode(%d)", int(m))
}

// Matches reports whether the entry is kept by the mode.
func (m ConcilMode) Matches(e *domain.Entry) bool {
	switch m {
	case ConcilReconciled:
		return e.IsReconciled()
	case ConcilUnreconciled:
		return !e.IsReconciled()
	default:
		return true
	}
}

func (m ConcilMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ConcilMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = ConcilAll
		return nil
	}
	for mode, name := range concilModeNames {
		if strings.EqualFold(name, string(text)) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown reconciliation mode %q", string(text))
}

// MatchesConcilGroup reports whether the entry belongs to the reconciliation group.
func MatchesConcilGroup(e *domain.Entry, groupID int64) bool {
	return e.ConcilID == groupID
}
