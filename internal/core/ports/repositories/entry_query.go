package repositories

import "time"

// EntryQuery narrows the entries loaded from storage.
// Zero values mean "no restriction".
type EntryQuery struct {
	Numbers        []int64
	Ledgers        []string
	Accounts       []string
	From           *time.Time // effect date lower bound, inclusive
	To             *time.Time // effect date upper bound, inclusive
	IncludeDeleted bool
}
