package domain

import "errors"

// SettlementClear is handed to storage to explicitly unsettle an entry.
// Storage never keeps it: the entry ends with a settlement number of 0.
const SettlementClear int64 = -1

var (
	ErrEntryNotRough        = errors.New("entry is not a rough entry")
	ErrEntryPeriodLocked    = errors.New("entry belongs to a closed period")
	ErrSettlementUnbalanced = errors.New("selection is not balanced")
	ErrEmptySelection       = errors.New("selection is empty")
	ErrGroupNotFound        = errors.New("reconciliation group not found")
	ErrDuplicateMember      = errors.New("item already belongs to the reconciliation group")
)
